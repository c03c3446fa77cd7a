package server

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bjaus/petdocs/internal/echo"
	"github.com/bjaus/petdocs/internal/petstore"
	"github.com/bjaus/petdocs/internal/rest"
)

type handlers struct {
	store  *petstore.Store
	logger *slog.Logger
}

func (h *handlers) listPets(_ context.Context, _ *rest.Void) (*[]petstore.Pet, error) {
	pets := h.store.List()
	return &pets, nil
}

func (h *handlers) createPet(_ context.Context, req *petstore.Pet) (*petstore.Pet, error) {
	pet := h.store.Create(req.Name)
	h.logger.Debug("pet created", "id", pet.ID, "name", pet.Name)
	return &pet, nil
}

func (h *handlers) findPet(_ context.Context, req *PetID) (*petstore.Pet, error) {
	pet, ok := h.store.Find(req.ID)
	if !ok {
		return nil, rest.NotFound("pet %d not found", req.ID)
	}
	return &pet, nil
}

func (h *handlers) updatePet(_ context.Context, req *UpdatePet) (*petstore.Pet, error) {
	if !h.store.Update(req.ID, req.Body) {
		return nil, rest.NotFound("pet %d not found or body id %d does not match", req.ID, req.Body.ID)
	}
	h.logger.Debug("pet updated", "id", req.ID)
	return &req.Body, nil
}

func (h *handlers) deletePet(_ context.Context, req *PetID) (*rest.Void, error) {
	if !h.store.Delete(req.ID) {
		return nil, rest.NotFound("pet %d not found", req.ID)
	}
	h.logger.Debug("pet deleted", "id", req.ID)
	return &rest.Void{}, nil
}

func (h *handlers) genericPets(_ context.Context, _ *rest.Void) (*Elements[petstore.Pet], error) {
	return &Elements[petstore.Pet]{Elements: h.store.List()}, nil
}

func (h *handlers) shapes(_ context.Context, _ *rest.Void) (*Shape, error) {
	return &Shape{A: 10, B: 25}, nil
}

func (h *handlers) info(_ context.Context, req *EchoRequest) (*rest.Stream, error) {
	return echoResponse(req.RawRequest), nil
}

func (h *handlers) withQueryParameter(_ context.Context, req *QueryParameter) (*rest.Stream, error) {
	return echoResponse(req.RawRequest), nil
}

func (h *handlers) withHeader(_ context.Context, req *Header) (*rest.Stream, error) {
	return echoResponse(req.RawRequest), nil
}

func echoResponse(raw rest.RawRequest) *rest.Stream {
	return &rest.Stream{
		ContentType: "text/plain; charset=utf-8",
		Body:        strings.NewReader(echo.Format(echo.FromRequest(raw.Request))),
	}
}
