package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
)

// PersonService implements the Connect PersonService.
type PersonService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPersonService creates a PersonService backed by store.
func NewPersonService(store storage.Store, logger *slog.Logger) *PersonService {
	return &PersonService{store: store, logger: logger}
}

func personName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	return name, nil
}

// CreatePerson adds a participant.
func (s *PersonService) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	name, err := personName(req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}

	person := &models.Person{Name: name}
	if err := s.store.CreatePerson(ctx, person); err != nil {
		s.logger.Warn("CreatePerson failed", "name", name, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Person created", "person_id", person.ID, "name", person.Name)
	return connect.NewResponse(&api.CreatePersonResponse{Person: toAPIPerson(person)}), nil
}

// ListPeople returns every participant ordered by id.
func (s *PersonService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		s.logger.Error("ListPeople failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Person, len(people))
	for i, p := range people {
		out[i] = toAPIPerson(p)
	}
	return connect.NewResponse(&api.ListPeopleResponse{People: out}), nil
}

// UpdatePerson renames a participant.
func (s *PersonService) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error) {
	name, err := personName(req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}

	person := &models.Person{ID: req.Msg.ID, Name: name}
	if err := s.store.UpdatePerson(ctx, person); err != nil {
		s.logger.Warn("UpdatePerson failed", "person_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Person updated", "person_id", person.ID, "name", person.Name)
	return connect.NewResponse(&api.UpdatePersonResponse{Person: toAPIPerson(person)}), nil
}

// DeletePerson removes a participant nobody references.
func (s *PersonService) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	if err := s.store.DeletePerson(ctx, req.Msg.ID); err != nil {
		s.logger.Warn("DeletePerson failed", "person_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Person deleted", "person_id", req.Msg.ID)
	return connect.NewResponse(&api.DeletePersonResponse{}), nil
}
