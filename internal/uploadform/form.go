package uploadform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/google/uuid"
)

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadFile loads a file from disk and detects its type.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("uploadform - ReadFile - os.ReadFile: %w", err)
	}

	return File{
		Name:        path,
		ContentType: DetectContentType(path, data),
		Data:        data,
	}, nil
}

type StagedFile struct {
	ID          string
	File        File
	Title       string
	Description string
}

type Rejection struct {
	Name string
	Err  error
}

func (r Rejection) String() string {
	return r.Name + ": " + errorText(r.Err)
}

// Form stages files and submits them one by one: upload first, then the
// record is created from the upload result verbatim.
type Form struct {
	uploader Uploader
	records  RecordCreator
	logger   logger.Interface

	mu     sync.Mutex
	staged []StagedFile
}

func New(uploader Uploader, records RecordCreator, l logger.Interface) *Form {
	return &Form{
		uploader: uploader,
		records:  records,
		logger:   l,
	}
}

// Stage adds the valid files and reports the invalid ones together.
func (f *Form) Stage(files ...File) []Rejection {
	var rejected []Rejection

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, file := range files {
		if err := Validate(file.ContentType, int64(len(file.Data))); err != nil {
			rejected = append(rejected, Rejection{Name: file.Name, Err: err})

			continue
		}

		f.staged = append(f.staged, StagedFile{
			ID:    uuid.NewString(),
			File:  file,
			Title: DefaultTitle(file.Name),
		})
	}

	return rejected
}

func (f *Form) Staged() []StagedFile {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.staged)
}

func (f *Form) SetTitle(id, title string) error {
	return f.update(id, func(s *StagedFile) { s.Title = truncate(title, MaxTitleLen) })
}

func (f *Form) SetDescription(id, description string) error {
	return f.update(id, func(s *StagedFile) { s.Description = description })
}

func (f *Form) update(id string, fn func(*StagedFile)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.staged {
		if f.staged[i].ID == id {
			fn(&f.staged[i])

			return nil
		}
	}

	return fmt.Errorf("Form - update: %w", errs.ErrRecordNotFound)
}

func (f *Form) Remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.staged = slices.DeleteFunc(f.staged, func(s StagedFile) bool { return s.ID == id })
}

func (f *Form) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.staged = nil
}

type Failure struct {
	Name string
	Err  error
}

type Result struct {
	Uploaded []entity.ImageRecord
	Failed   []Failure
}

func (r *Result) Message() string {
	switch {
	case len(r.Uploaded) > 0 && len(r.Failed) == 0:
		return fmt.Sprintf("Successfully uploaded %d image(s)!", len(r.Uploaded))
	case len(r.Uploaded) > 0:
		return fmt.Sprintf("Uploaded %d image(s). %d failed.", len(r.Uploaded), len(r.Failed))
	default:
		return "Upload failed. Please try again."
	}
}

// Links lists the URLs of the uploaded images in submission order.
func (r *Result) Links() []string {
	links := make([]string, 0, len(r.Uploaded))
	for _, rec := range r.Uploaded {
		links = append(links, rec.URL)
	}

	return links
}

// Submit uploads the staged files sequentially. A failed file is counted and
// skipped; the staging area is emptied afterwards either way.
func (f *Form) Submit(ctx context.Context) (*Result, error) {
	staged := f.Staged()
	if len(staged) == 0 {
		return nil, fmt.Errorf("Please select images to upload: %w", errs.ErrNothingStaged)
	}

	res := &Result{}

	for _, s := range staged {
		rec, err := f.submitOne(ctx, s)
		if err != nil {
			f.logger.Error(err, "Form - Submit - "+s.File.Name)
			res.Failed = append(res.Failed, Failure{Name: s.File.Name, Err: err})

			if ctx.Err() != nil {
				break
			}

			continue
		}

		res.Uploaded = append(res.Uploaded, *rec)
	}

	f.Clear()

	return res, nil
}

func (f *Form) submitOne(ctx context.Context, s StagedFile) (*entity.ImageRecord, error) {
	upload, err := f.uploader.Upload(ctx, dto.UploadFile{
		Filename:    s.File.Name,
		ContentType: s.File.ContentType,
		Data:        s.File.Data,
		Title:       s.Title,
		Description: s.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("Form - submitOne - f.uploader.Upload: %w", err)
	}

	rec, err := f.records.CreateRecord(ctx, *upload)
	if err != nil {
		return nil, fmt.Errorf("Form - submitOne - f.records.CreateRecord: %w", err)
	}

	return rec, nil
}

// errorText drops the sentinel suffix from validation errors.
func errorText(err error) string {
	if inner := errors.Unwrap(err); inner != nil {
		return strings.TrimSuffix(err.Error(), ": "+inner.Error())
	}

	return err.Error()
}
