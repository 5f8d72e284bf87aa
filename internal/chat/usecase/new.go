package usecase

import (
	"time"

	"realtime-srv/internal/chat"
	"realtime-srv/pkg/encrypter"
	pkgLog "realtime-srv/pkg/log"
	"realtime-srv/pkg/minio"
)

type usecase struct {
	l       pkgLog.Logger
	storage minio.MinIO
	bucket  string
	// enc is nil when messages are stored in clear.
	enc   encrypter.Encrypter
	clock func() time.Time
}

// New creates the archive. enc may be nil.
func New(l pkgLog.Logger, storage minio.MinIO, bucket string, enc encrypter.Encrypter) chat.UseCase {
	return &usecase{
		l:       l,
		storage: storage,
		bucket:  bucket,
		enc:     enc,
		clock:   time.Now,
	}
}
