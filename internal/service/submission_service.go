package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"parampara/internal/cache"
	"parampara/internal/enrich"
	"parampara/internal/errors"
	"parampara/internal/model"
	"parampara/internal/repository"
	"parampara/internal/storage"
	"parampara/internal/upload"
)

const (
	statsCacheKey = "submissions:stats"
	statsCacheTTL = 5 * time.Minute
)

// SubmissionInput carries the caller-supplied metadata for a new submission.
type SubmissionInput struct {
	Title       string
	Description string
	Category    model.Category
	ContentType model.ContentType
	Language    *string
	Region      *string
	LocationLat *float64
	LocationLng *float64
}

// UploadedFile describes the incoming file stream. Content is read exactly
// once and streamed to storage, never buffered whole.
type UploadedFile struct {
	Name    string
	Size    int64
	Content io.Reader
}

// SubmissionService runs the ingestion pipeline: validation, storage,
// best-effort enrichment, transactional persistence.
type SubmissionService interface {
	Create(ctx context.Context, userID uint, input SubmissionInput, file *UploadedFile) (*model.Submission, []string, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Submission, error)
	Stats(ctx context.Context) (*repository.SubmissionStats, error)
	ExportCSV(ctx context.Context, userID uint, w io.Writer) error
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	validator      *upload.Validator
	mediaStore     *storage.MediaStore
	transcriber    enrich.Transcriber
	translator     enrich.Translator
	cache          *cache.Client
	enrichTimeout  time.Duration
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	validator *upload.Validator,
	mediaStore *storage.MediaStore,
	transcriber enrich.Transcriber,
	translator enrich.Translator,
	cache *cache.Client,
	enrichTimeout time.Duration,
) SubmissionService {
	if enrichTimeout <= 0 {
		enrichTimeout = time.Minute
	}
	return &submissionService{
		submissionRepo: submissionRepo,
		validator:      validator,
		mediaStore:     mediaStore,
		transcriber:    transcriber,
		translator:     translator,
		cache:          cache,
		enrichTimeout:  enrichTimeout,
	}
}

// Create runs the full ingestion pipeline. Validation happens before any
// durable write; enrichment failures come back as warnings, never as errors;
// a failed database insert removes the already-stored file.
func (s *submissionService) Create(ctx context.Context, userID uint, input SubmissionInput, file *UploadedFile) (*model.Submission, []string, error) {
	if err := validateInput(input, file); err != nil {
		return nil, nil, err
	}
	if file != nil {
		if err := s.validator.Validate(file.Name, file.Size, input.ContentType); err != nil {
			return nil, nil, err
		}
	}

	submission := &model.Submission{
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		ContentType: input.ContentType,
		Language:    input.Language,
		Region:      input.Region,
		LocationLat: input.LocationLat,
		LocationLng: input.LocationLng,
	}

	var warnings []string
	var stored *storage.StoredFile
	if file != nil {
		var err error
		stored, err = s.mediaStore.Store(ctx, input.ContentType, file.Content, file.Name)
		if err != nil {
			return nil, nil, err
		}
		submission.FilePath = &stored.Path
		submission.FileSize = stored.Size
	}

	if input.ContentType == model.ContentTypeAudio {
		warnings = append(warnings, s.enrichAudio(ctx, submission, stored.Path, file.Name)...)
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		if stored != nil {
			// no rows without their file and no files without their row
			_ = s.mediaStore.Remove(stored.Path)
		}
		return nil, nil, fmt.Errorf("persist submission: %w", err)
	}

	_ = s.cache.Delete(ctx, statsCacheKey)
	return submission, warnings, nil
}

// enrichAudio transcribes a stored audio file under a bounded deadline and
// attaches the result. Any failure is reported as a warning; the submission
// persists without a transcript.
func (s *submissionService) enrichAudio(ctx context.Context, submission *model.Submission, storedPath, fileName string) []string {
	audio, err := s.mediaStore.Open(storedPath)
	if err != nil {
		return []string{fmt.Sprintf("transcription skipped: %v", err)}
	}
	defer audio.Close()

	enrichCtx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
	defer cancel()

	var hint string
	if submission.Language != nil {
		hint = *submission.Language
	}
	result, err := s.transcriber.Transcribe(enrichCtx, audio, fileName, hint)
	if err != nil {
		if enrich.NonFatal(err) {
			return []string{fmt.Sprintf("transcription unavailable: %v", err)}
		}
		return []string{fmt.Sprintf("transcription failed: %v", err)}
	}

	text := strings.TrimSpace(result.Text)
	submission.Transcript = &text
	if submission.Language == nil && result.Language != "" {
		lang := result.Language
		submission.Language = &lang
	}
	return nil
}

func validateInput(input SubmissionInput, file *UploadedFile) error {
	if strings.TrimSpace(input.Title) == "" {
		return errors.ErrInvalidInput
	}
	if !input.Category.Valid() || !input.ContentType.Valid() {
		return errors.ErrInvalidInput
	}
	if input.Region != nil && !model.ValidRegion(*input.Region) {
		return errors.ErrInvalidInput
	}
	if (input.LocationLat == nil) != (input.LocationLng == nil) {
		return errors.ErrInvalidInput
	}
	// Audio submissions are transcript sources; the file is mandatory.
	if input.ContentType == model.ContentTypeAudio && file == nil {
		return errors.ErrInvalidInput
	}
	return nil
}

// ListByUser returns the user's submissions newest first.
func (s *submissionService) ListByUser(ctx context.Context, userID uint) ([]model.Submission, error) {
	return s.submissionRepo.ListByUser(ctx, userID)
}

// Stats returns aggregate submission counts, cached briefly since the numbers
// back a public landing page.
func (s *submissionService) Stats(ctx context.Context) (*repository.SubmissionStats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached repository.SubmissionStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.submissionRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}

// ExportCSV streams the user's submissions as CSV.
func (s *submissionService) ExportCSV(ctx context.Context, userID uint, w io.Writer) error {
	submissions, err := s.submissionRepo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list submissions: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "title", "description", "category", "content_type", "file_path", "file_size", "transcript", "language", "region", "location_lat", "location_lng", "created_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, sub := range submissions {
		row := []string{
			strconv.FormatUint(uint64(sub.ID), 10),
			sub.Title,
			sub.Description,
			string(sub.Category),
			string(sub.ContentType),
			strPtr(sub.FilePath),
			strconv.FormatInt(sub.FileSize, 10),
			strPtr(sub.Transcript),
			strPtr(sub.Language),
			strPtr(sub.Region),
			floatPtr(sub.LocationLat),
			floatPtr(sub.LocationLng),
			sub.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Translate exposes the translation capability directly, for transcripts and
// descriptions.
func (s *submissionService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(targetLang) == "" {
		return "", errors.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
	defer cancel()
	return s.translator.Translate(ctx, text, sourceLang, targetLang)
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatPtr(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
