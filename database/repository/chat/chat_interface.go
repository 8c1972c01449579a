package chatRepo

import (
	"context"
	"fmt"
	"sort"

	"globaled/models"
)

// ChatRepository stores direct message threads between two users.
type ChatRepository interface {
	History(ctx context.Context, userA, userB int) ([]models.ChatMessage, error)
	Append(ctx context.Context, userA, userB int, msg models.ChatMessage) error
}

// ThreadKey is the order-independent key of a two-party thread, e.g. "1-21".
func ThreadKey(userA, userB int) string {
	ids := []int{userA, userB}
	sort.Ints(ids)
	return fmt.Sprintf("%d-%d", ids[0], ids[1])
}
