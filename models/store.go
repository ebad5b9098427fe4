package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Store wraps the database with the create and list operations used by the controllers.
// Every operation is a single auto-committed statement.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateProject(ctx context.Context, project *Project) error {
	if err := s.db.WithContext(ctx).Omit("Images").Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := s.db.WithContext(ctx).Order("id").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id uint) (Project, error) {
	var project Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return Project{}, notFound(err, "project", id)
	}
	return project, nil
}

// DeleteProject removes the project; its images and their annotations go with it through the
// foreign key cascade.
func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Project{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete project %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) CreateImage(ctx context.Context, image *Image) error {
	if err := s.db.WithContext(ctx).Omit("Annotations").Create(image).Error; err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	return nil
}

// ListImagesByProject returns the images of a project. An unknown project yields an empty slice.
func (s *Store) ListImagesByProject(ctx context.Context, projectID uint) ([]Image, error) {
	var images []Image
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("list images of project %d: %w", projectID, err)
	}
	return images, nil
}

func (s *Store) GetImage(ctx context.Context, id uint) (Image, error) {
	var image Image
	if err := s.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return Image{}, notFound(err, "image", id)
	}
	return image, nil
}

func (s *Store) CreateAnnotation(ctx context.Context, annotation *Annotation) error {
	if err := s.db.WithContext(ctx).Create(annotation).Error; err != nil {
		return fmt.Errorf("create annotation: %w", err)
	}
	return nil
}

func (s *Store) ListAnnotationsByImage(ctx context.Context, imageID uint) ([]Annotation, error) {
	var annotations []Annotation
	if err := s.db.WithContext(ctx).Where("image_id = ?", imageID).Order("id").Find(&annotations).Error; err != nil {
		return nil, fmt.Errorf("list annotations of image %d: %w", imageID, err)
	}
	return annotations, nil
}

// CreateDrawing stores a drawing, falling back to the default color when none is set.
func (s *Store) CreateDrawing(ctx context.Context, drawing *Drawing) error {
	if drawing.Color == "" {
		drawing.Color = DefaultDrawingColor
	}
	if err := s.db.WithContext(ctx).Create(drawing).Error; err != nil {
		return fmt.Errorf("create drawing: %w", err)
	}
	return nil
}

// ListDrawings returns all drawings, or only those of user when it is not empty.
func (s *Store) ListDrawings(ctx context.Context, user string) ([]Drawing, error) {
	query := s.db.WithContext(ctx).Order("id")
	if user != "" {
		// struct condition so the column name gets quoted, "user" is reserved in postgres
		query = query.Where(&Drawing{User: user})
	}
	var drawings []Drawing
	if err := query.Find(&drawings).Error; err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	return drawings, nil
}

func notFound(err error, kind string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("get %s %d: %w", kind, id, err)
}
