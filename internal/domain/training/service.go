package training

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ascend/internal/platform/storage"
)

type Service struct {
	Store *Store
	Files storage.Store
}

func NewService(store *Store, files storage.Store) *Service {
	if files == nil {
		files = storage.NoopStore{}
	}
	return &Service{Store: store, Files: files}
}

func (s *Service) List(ctx context.Context) ([]Training, error) {
	return s.Store.ListTrainings(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Training, error) {
	return s.Store.GetTraining(ctx, id)
}

func (s *Service) Create(ctx context.Context, input NewTraining) (Training, error) {
	if input.Status == "" {
		input.Status = StatusPlanejado
	}
	if input.Source == "" {
		input.Source = SourceInternal
	}

	id := uuid.NewString()
	if err := s.Store.InsertTraining(ctx, s.Store.DB, id, input); err != nil {
		return Training{}, err
	}
	return s.Store.GetTraining(ctx, id)
}

func (s *Service) Update(ctx context.Context, tr Training) (Training, error) {
	if err := s.Store.UpdateTraining(ctx, tr); err != nil {
		return Training{}, err
	}
	return s.Store.GetTraining(ctx, tr.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tr, err := s.Store.GetTraining(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteTraining(ctx, id); err != nil {
		return err
	}
	for _, material := range tr.Materials {
		_ = s.Files.Delete(ctx, material.URL)
	}
	return nil
}

func (s *Service) AddParticipant(ctx context.Context, trainingID, employeeID string) (string, error) {
	if _, err := s.Store.GetTraining(ctx, trainingID); err != nil {
		return "", err
	}
	return s.Store.AddParticipant(ctx, s.Store.DB, trainingID, employeeID)
}

func (s *Service) RemoveParticipant(ctx context.Context, trainingID, participantID string) error {
	return s.Store.RemoveParticipant(ctx, trainingID, participantID)
}

func (s *Service) AttachMaterial(ctx context.Context, trainingID, name, contentType string, data []byte) (Material, error) {
	if _, err := s.Store.GetTraining(ctx, trainingID); err != nil {
		return Material{}, err
	}

	saved, err := s.Files.Save(ctx, storage.SaveInput{Name: name, ContentType: contentType, Data: data})
	if err != nil {
		return Material{}, fmt.Errorf("store material: %w", err)
	}

	material := Material{
		TrainingID:  trainingID,
		Name:        name,
		ContentType: contentType,
		Size:        saved.Size,
		URL:         saved.URL,
	}
	id, err := s.Store.InsertMaterial(ctx, material)
	if err != nil {
		_ = s.Files.Delete(ctx, saved.Key)
		return Material{}, err
	}
	material.ID = id
	return material, nil
}

func (s *Service) DetachMaterial(ctx context.Context, trainingID, materialID string) error {
	material, err := s.Store.GetMaterial(ctx, trainingID, materialID)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteMaterial(ctx, trainingID, materialID); err != nil {
		return err
	}
	_ = s.Files.Delete(ctx, material.URL)
	return nil
}
