package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"

	"realtime-srv/internal/chat"
	"realtime-srv/internal/model"
	"realtime-srv/pkg/minio"
	"realtime-srv/pkg/paginator"
)

func (uc *usecase) Save(ctx context.Context, msg model.ChatMessage) error {
	if msg.ID == "" || msg.RoomID == "" || msg.Timestamp.IsZero() {
		return chat.ErrInvalidMessage
	}

	body, err := json.Marshal(msg)
	if err != nil {
		uc.l.Errorf(ctx, "internal.chat.usecase.Save.Marshal: %v", err)
		return err
	}

	contentType := contentTypeJSON
	if uc.enc != nil {
		if body, err = uc.enc.Seal(body); err != nil {
			uc.l.Errorf(ctx, "internal.chat.usecase.Save.Seal: %v", err)
			return err
		}
		contentType = contentTypeEncrypted
	}

	_, err = uc.storage.PutObject(ctx, &minio.PutRequest{
		BucketName:  uc.bucket,
		ObjectName:  objectName(msg.RoomID, msg.Timestamp, msg.ID),
		Reader:      bytes.NewReader(body),
		Size:        int64(len(body)),
		ContentType: contentType,
		Metadata: map[string]string{
			"room-id": msg.RoomID,
			"user-id": msg.UserID,
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.chat.usecase.Save.PutObject: %v", err)
		return err
	}
	return nil
}

// List returns the messages archived for one room on one UTC day, oldest first.
func (uc *usecase) List(ctx context.Context, sc model.Scope, ip chat.ListInput) (chat.ListOutput, error) {
	ip.RoomID = strings.TrimSpace(ip.RoomID)
	if ip.RoomID == "" {
		return chat.ListOutput{}, chat.ErrInvalidRoom
	}
	if ip.Date.IsZero() {
		ip.Date = uc.clock()
	}

	objects, err := uc.storage.ListObjects(ctx, &minio.ListRequest{
		BucketName: uc.bucket,
		Prefix:     dayPrefix(ip.RoomID, ip.Date),
		Recursive:  true,
	})
	if err != nil {
		if minio.IsNotFound(err) {
			return chat.ListOutput{Messages: []model.ChatMessage{}}, nil
		}
		uc.l.Errorf(ctx, "internal.chat.usecase.List.ListObjects: %v", err)
		return chat.ListOutput{}, err
	}

	page, pag := paginator.SortAndPaginate(objects, ip.PaginateQuery, func(a, b *minio.ObjectInfo) int {
		return a.LastModified.Compare(b.LastModified)
	})

	msgs := make([]model.ChatMessage, 0, len(page))
	for _, obj := range page {
		msg, err := uc.load(ctx, obj.ObjectName)
		if err != nil {
			if minio.IsNotFound(err) {
				continue
			}
			return chat.ListOutput{}, err
		}
		msgs = append(msgs, msg)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})

	pag.Count = int64(len(msgs))
	return chat.ListOutput{Messages: msgs, Paginator: pag}, nil
}

func (uc *usecase) load(ctx context.Context, name string) (model.ChatMessage, error) {
	rc, err := uc.storage.GetObject(ctx, uc.bucket, name)
	if err != nil {
		uc.l.Warnf(ctx, "internal.chat.usecase.load.GetObject %s: %v", name, err)
		return model.ChatMessage{}, err
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		uc.l.Errorf(ctx, "internal.chat.usecase.load.ReadAll %s: %v", name, err)
		return model.ChatMessage{}, err
	}

	if uc.enc != nil {
		if body, err = uc.enc.Open(body); err != nil {
			uc.l.Errorf(ctx, "internal.chat.usecase.load.Open %s: %v", name, err)
			return model.ChatMessage{}, err
		}
	}

	var msg model.ChatMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		uc.l.Errorf(ctx, "internal.chat.usecase.load.Unmarshal %s: %v", name, err)
		return model.ChatMessage{}, err
	}
	return msg, nil
}
