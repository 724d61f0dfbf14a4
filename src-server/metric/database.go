package metric

import (
	"context"
	"time"

	"guestlist/src-server/model"
	"guestlist/src-server/utils"
)

func database(as *utils.AppState) (time.Duration, error) {
	start := time.Now()
	if _, err := as.BunDB.NewSelect().
		Model((*model.Registration)(nil)).
		Where("event_id = ?", "").
		Exists(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
