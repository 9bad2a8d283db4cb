package seatws

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case payload, ok := <-client.send:
		require.True(t, ok, "send channel closed")
		var message Message
		require.NoError(t, json.Unmarshal(payload, &message))
		return message
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for seat update")
	}
	return Message{}
}

func TestHubDeliversOnlyToCourseSubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	courseID := uuid.New()
	watcher := NewClient(hub, nil, courseID)
	other := NewClient(hub, nil, uuid.New())
	hub.Register(watcher)
	hub.Register(other)
	require.Equal(t, 1, hub.Subscribers(courseID))

	hub.PublishSeats(models.SeatUsage{CourseID: courseID, SeatsTaken: 3, MaxParticipants: 10})

	message := receive(t, watcher)
	assert.Equal(t, "seats", message.Type)
	assert.Equal(t, courseID, message.CourseID)
	assert.Equal(t, 3, message.SeatsTaken)
	assert.Equal(t, 10, message.MaxParticipants)
	assert.Empty(t, other.send)
}

func TestHubUnregisterClosesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	courseID := uuid.New()
	client := NewClient(hub, nil, courseID)
	hub.Register(client)
	hub.Unregister(client)

	assert.Equal(t, 0, hub.Subscribers(courseID))
	_, ok := <-client.send
	assert.False(t, ok)
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub()
	courseID := uuid.New()
	client := NewClient(hub, nil, courseID)
	hub.clients[courseID] = map[*Client]struct{}{client: {}}

	for i := 0; i <= cap(client.send); i++ {
		hub.deliver(seatMessage(models.SeatUsage{CourseID: courseID, SeatsTaken: i, MaxParticipants: 50}))
	}

	assert.NotContains(t, hub.clients, courseID)
	assert.Len(t, client.send, cap(client.send))
}

func TestSubscribeRegistersBeforeReadingSnapshot(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	courseID := uuid.New()
	client := NewClient(hub, nil, courseID)
	err := hub.Subscribe(client, func() (models.SeatUsage, error) {
		assert.Equal(t, 1, hub.Subscribers(courseID))
		return models.SeatUsage{CourseID: courseID, SeatsTaken: 1, MaxParticipants: 2}, nil
	})
	require.NoError(t, err)

	message := receive(t, client)
	assert.Equal(t, 1, message.SeatsTaken)
	assert.Equal(t, 2, message.MaxParticipants)
}

func TestSubscribeKeepsClientWhenSnapshotFails(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	courseID := uuid.New()
	client := NewClient(hub, nil, courseID)
	err := hub.Subscribe(client, func() (models.SeatUsage, error) {
		return models.SeatUsage{}, errors.New("db down")
	})
	require.Error(t, err)
	assert.Empty(t, client.send)

	hub.PublishSeats(models.SeatUsage{CourseID: courseID, SeatsTaken: 4, MaxParticipants: 5})
	assert.Equal(t, 4, receive(t, client).SeatsTaken)
}
