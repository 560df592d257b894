package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const courseEventsChannel = "course_events"

// CourseEvent is published when a course changes under live sessions.
type CourseEvent struct {
	Type     string `json:"type"`
	CourseID int    `json:"course_id"`
}

// PublishCourseDeleted tells every server instance to close sessions on
// courseID.
func PublishCourseDeleted(ctx context.Context, rdb *redis.Client, courseID int) error {
	payload, err := json.Marshal(CourseEvent{Type: "course_deleted", CourseID: courseID})
	if err != nil {
		return err
	}
	if err := rdb.Publish(ctx, courseEventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish course event: %w", err)
	}
	return nil
}

// StartCourseEventSubscriber relays course events from redis to the hub until
// ctx ends.
func StartCourseEventSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; course event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, courseEventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", courseEventsChannel)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				hub.handleCourseEvent(msg.Payload)
			}
		}
	}()
}

func (h *Hub) handleCourseEvent(payload string) {
	var evt CourseEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		log.Printf("[WS] invalid course event payload: %v", err)
		return
	}

	switch evt.Type {
	case "course_deleted":
		sent := h.BroadcastToCourse(evt.CourseID, map[string]interface{}{
			"type":    "course_removed",
			"message": "This course has been removed.",
		})
		h.mu.RLock()
		var ids []string
		for id := range h.courseRooms[evt.CourseID] {
			ids = append(ids, id)
		}
		h.mu.RUnlock()
		for _, id := range ids {
			h.manager.Remove(id)
		}
		log.Printf("[WS] course %d deleted: notified %d sessions", evt.CourseID, sent)
	default:
		log.Printf("[WS] unknown course event type: %s", evt.Type)
	}
}
