package services

import (
	"context"
	"log"
	"sync"

	"github.com/web3grant/Slushy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralTracker records outbound link activations. Recording is
// fire-and-forget: events are queued onto a buffered channel and written by
// a background goroutine, so a click is never slowed down or failed by the
// store. Insert errors are logged and swallowed.
type ReferralTracker struct {
	db      *gorm.DB
	events  chan models.ReferralPoint
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.RWMutex
}

// NewReferralTracker creates a new ReferralTracker
func NewReferralTracker(db *gorm.DB) *ReferralTracker {
	return &ReferralTracker{
		db:     db,
		events: make(chan models.ReferralPoint, 256),
	}
}

// Start starts the background writer. A stopped tracker can be started again.
func (t *ReferralTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}

	t.ctx, t.cancel = context.WithCancel(context.Background())

	ctx := t.ctx
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.drain(ctx)
	}()

	t.running = true
	log.Println("Referral tracker started")
}

// Stop flushes queued events and stops the background writer
func (t *ReferralTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	t.cancel()
	t.wg.Wait()

	t.running = false
	log.Println("Referral tracker stopped")
}

// IsRunning returns whether the tracker is currently running
func (t *ReferralTracker) IsRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}

// Record queues a click event for the given profile and item. Never blocks:
// if the queue is full the event is dropped with a log line.
func (t *ReferralTracker) Record(userID, itemID uuid.UUID, itemType string) {
	event := models.ReferralPoint{
		UserID:   userID,
		ItemID:   itemID,
		ItemType: itemType,
	}

	select {
	case t.events <- event:
	default:
		log.Printf("Referral queue full, dropping click on %s %s", itemType, itemID)
	}
}

func (t *ReferralTracker) drain(ctx context.Context) {
	for {
		select {
		case event := <-t.events:
			t.write(event)
		case <-ctx.Done():
			// Flush whatever is still queued before exiting.
			for {
				select {
				case event := <-t.events:
					t.write(event)
				default:
					return
				}
			}
		}
	}
}

func (t *ReferralTracker) write(event models.ReferralPoint) {
	if err := t.db.Create(&event).Error; err != nil {
		log.Printf("Failed to record referral for %s %s: %v", event.ItemType, event.ItemID, err)
	}
}
