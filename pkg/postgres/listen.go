package postgres

import (
	"context"

	"github.com/cedarwatch/shiftdesk/pkg/db"
)

const changeChannel = "shiftdesk_changes"

// WatchChanges subscribes to the store's change feed and invokes onChange for
// every shift or assignment row change, with a "table:op" payload. It blocks
// until ctx is cancelled or the connection drops; there is no automatic
// reconnect, callers re-issue the watch.
func (d *DB) WatchChanges(ctx context.Context, onChange func(payload string)) error {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return db.Backend("watch changes", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+changeChannel); err != nil {
		return db.Backend("watch changes", err)
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return db.Backend("watch changes", err)
		}
		onChange(notification.Payload)
	}
}
