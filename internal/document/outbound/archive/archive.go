// Package archive stores rendered documents in object storage so issued
// paperwork can be retrieved later.
package archive

import (
	"bytes"
	"context"

	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/storage"
	"go.opentelemetry.io/otel/codes"
)

type Archive struct {
	storage storage.Storage
	bucket  string
	ins     instrument.Instrumentation
}

func NewArchive(st storage.Storage, bucket string, ins instrument.Instrumentation) *Archive {
	return &Archive{storage: st, bucket: bucket, ins: ins}
}

func (a *Archive) Store(ctx context.Context, key, contentType string, data []byte) error {
	ctx, span := a.ins.Tracer("document.outbound.archive").Start(ctx, "Store")
	defer span.End()

	_, err := a.storage.PutObject(ctx, a.bucket, key, bytes.NewReader(data), storage.PutOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
