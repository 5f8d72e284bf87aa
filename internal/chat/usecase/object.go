package usecase

import (
	"fmt"
	"net/url"
	"time"
)

const (
	objectRoot      = "rooms"
	objectDayLayout = "2006/01/02"

	contentTypeJSON      = "application/json"
	contentTypeEncrypted = "application/octet-stream"
)

// dayPrefix is rooms/<roomId>/<yyyy>/<mm>/<dd>/. The room id is path escaped.
func dayPrefix(roomID string, day time.Time) string {
	return fmt.Sprintf("%s/%s/%s/", objectRoot, url.PathEscape(roomID), day.UTC().Format(objectDayLayout))
}

func objectName(roomID string, ts time.Time, id string) string {
	return dayPrefix(roomID, ts) + id + ".json"
}
