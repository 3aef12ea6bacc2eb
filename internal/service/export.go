package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"empapi/internal/report"
	"empapi/internal/repository"
	"empapi/internal/storage"
)

// ErrNoEmployees is returned by Export when there is nothing to render.
var ErrNoEmployees = errors.New("no employees to export")

const exportPrefix = "exports/"

// ExportResult describes an uploaded roster workbook.
type ExportResult struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// RosterExporter renders the employee collection and publishes it to object storage.
type RosterExporter interface {
	Export(ctx context.Context) (*ExportResult, error)
}

type rosterExporter struct {
	repo   repository.EmployeeRepository
	store  storage.Storage
	expiry time.Duration
	newKey func() string
	tracer trace.Tracer
}

// NewRosterExporter constructs a RosterExporter whose download links stay valid for expiry.
func NewRosterExporter(repo repository.EmployeeRepository, store storage.Storage, expiry time.Duration) RosterExporter {
	return &rosterExporter{
		repo:   repo,
		store:  store,
		expiry: expiry,
		newKey: func() string { return exportPrefix + uuid.NewString() + ".xlsx" },
		tracer: otel.Tracer(tracerName),
	}
}

func (x *rosterExporter) Export(ctx context.Context) (*ExportResult, error) {
	ctx, span := x.tracer.Start(ctx, "RosterExporter.Export")
	defer span.End()

	items, err := x.repo.List(ctx)
	if err != nil {
		return nil, fail(span, fmt.Errorf("list employees: %w", err))
	}
	if len(items) == 0 {
		return nil, ErrNoEmployees
	}
	span.SetAttributes(attribute.Int("export.count", len(items)))

	rows := make([]report.RosterRow, 0, len(items))
	for _, e := range items {
		rows = append(rows, report.RosterRow{
			ID:          e.ID,
			Name:        e.Name,
			MailID:      e.MailID,
			JobTitle:    string(e.JobTitle),
			Mission:     string(e.Mission),
			ProjectName: e.ProjectName,
			ReportsTo:   e.ReportsTo,
		})
	}

	buf, err := report.RenderRoster(rows)
	if err != nil {
		return nil, fail(span, fmt.Errorf("render roster: %w", err))
	}

	key := x.newKey()
	if _, err = x.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: report.ContentType,
		Metadata:    map[string]string{"employee-count": fmt.Sprint(len(rows))},
	}); err != nil {
		return nil, fail(span, fmt.Errorf("upload roster: %w", err))
	}

	url, err := x.store.PresignGet(ctx, key, x.expiry)
	if err != nil {
		// an unreachable object is useless to the caller
		if derr := x.store.Delete(ctx, key); derr != nil {
			span.RecordError(fmt.Errorf("remove unsigned roster %s: %w", key, derr))
		}
		return nil, fail(span, fmt.Errorf("presign roster: %w", err))
	}

	return &ExportResult{Key: key, URL: url, Count: len(rows)}, nil
}
