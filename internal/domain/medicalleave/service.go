package medicalleave

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

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.Store.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (string, error) {
	return s.Store.CreateCategory(ctx, name)
}

func (s *Service) List(ctx context.Context, employeeID string) ([]MedicalLeave, error) {
	return s.Store.ListLeaves(ctx, employeeID)
}

func (s *Service) Get(ctx context.Context, id string) (MedicalLeave, error) {
	return s.Store.GetLeave(ctx, id)
}

func (s *Service) Create(ctx context.Context, input NewMedicalLeave) (MedicalLeave, error) {
	days, err := LeaveDays(input.StartDate, input.EndDate)
	if err != nil {
		return MedicalLeave{}, err
	}
	if input.Status == "" {
		input.Status = StatusAfastado
	}

	id := uuid.NewString()
	if err := s.Store.InsertLeave(ctx, s.Store.DB, id, input, days); err != nil {
		return MedicalLeave{}, err
	}
	return s.Store.GetLeave(ctx, id)
}

func (s *Service) Update(ctx context.Context, leave MedicalLeave) (MedicalLeave, error) {
	days, err := LeaveDays(leave.StartDate, leave.EndDate)
	if err != nil {
		return MedicalLeave{}, err
	}
	leave.Days = days
	if err := s.Store.UpdateLeave(ctx, leave); err != nil {
		return MedicalLeave{}, err
	}
	return s.Store.GetLeave(ctx, leave.ID)
}

// Delete removes the leave and its stored attachments; file-system cleanup
// failures are not fatal once the rows are gone.
func (s *Service) Delete(ctx context.Context, id string) error {
	leave, err := s.Store.GetLeave(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteLeave(ctx, id); err != nil {
		return err
	}
	for _, file := range leave.Files {
		_ = s.Files.Delete(ctx, file.URL)
	}
	return nil
}

// AttachFile stores the blob first and only then writes the row; a failed
// insert deletes the stored blob so no orphan file remains.
func (s *Service) AttachFile(ctx context.Context, leaveID, name, contentType string, data []byte) (File, error) {
	if _, err := s.Store.GetLeave(ctx, leaveID); err != nil {
		return File{}, err
	}

	saved, err := s.Files.Save(ctx, storage.SaveInput{Name: name, ContentType: contentType, Data: data})
	if err != nil {
		return File{}, fmt.Errorf("store file: %w", err)
	}

	file := File{
		LeaveID:     leaveID,
		Name:        name,
		ContentType: contentType,
		Size:        saved.Size,
		URL:         saved.URL,
	}
	id, err := s.Store.InsertFile(ctx, file)
	if err != nil {
		_ = s.Files.Delete(ctx, saved.Key)
		return File{}, err
	}
	file.ID = id
	return file, nil
}

func (s *Service) DetachFile(ctx context.Context, leaveID, fileID string) error {
	file, err := s.Store.GetFile(ctx, leaveID, fileID)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteFile(ctx, leaveID, fileID); err != nil {
		return err
	}
	_ = s.Files.Delete(ctx, file.URL)
	return nil
}
