package realtime

import (
	"context"

	"realtime-srv/internal/model"
)

// UseCase is the connection registry and room broadcast service.
// All registry state is owned by a single event loop started with Run.
type UseCase interface {
	// Lifecycle
	Run()
	Shutdown(ctx context.Context) error

	// Register binds a new transport connection to its handshake token and
	// starts its read and write pumps.
	Register(ctx context.Context, input RegisterInput) error
	// Disconnect closes a connection administratively.
	Disconnect(ctx context.Context, socketID string) error

	// Targeted delivery
	NotifyUser(ctx context.Context, input NotifyUserInput) (DeliveryOutput, error)
	NotifyToken(ctx context.Context, input NotifyTokenInput) (DeliveryOutput, error)
	SendLoanStatus(ctx context.Context, input LoanStatusInput) (DeliveryOutput, error)

	// Room and global delivery
	SendToRoom(ctx context.Context, input RoomEventInput) (DeliveryOutput, error)
	SendSystemMessage(ctx context.Context, input SystemMessageInput) (model.ChatMessage, DeliveryOutput, error)
	Broadcast(ctx context.Context, input BroadcastInput) (DeliveryOutput, error)
	BroadcastEvent(ctx context.Context, input EventInput) (DeliveryOutput, error)
	PublishDecision(ctx context.Context, input DecisionInput) (DeliveryOutput, error)

	// Presence
	GetPresence(ctx context.Context) (Presence, error)
	GetUserBySocketID(ctx context.Context, socketID string) (Identity, error)
}
