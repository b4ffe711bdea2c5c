package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotReserved is returned when another in-flight turn already holds a
// reservation for the same slot.
var ErrSlotReserved = errors.New("slot reservation already held")

const (
	// Redis key prefix for in-flight booking reservations
	RedisSlotKeyPrefix = "booking:slot:"

	// How long a reservation is held. Long enough to cover the booking
	// round-trip, short enough that an abandoned turn frees the slot.
	slotHoldTTL = 30 * time.Second
)

// BookingGuardService prevents two concurrent negotiation turns from
// submitting a booking for the same (doctor, date, time) slot. The guard is
// advisory: when Redis is unavailable it fails open and lets the upstream
// service's own conflict detection take over.
type BookingGuardService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewBookingGuardService(redisClient *redis.Client, log *logrus.Logger) *BookingGuardService {
	return &BookingGuardService{
		redisClient: redisClient,
		log:         log,
	}
}

// Acquire atomically reserves the slot via SET NX. Returns ErrSlotReserved
// if another turn holds it; infra failures fail open.
func (s *BookingGuardService) Acquire(ctx context.Context, doctorID, date, timeOfDay string) error {
	key := slotKey(doctorID, date, timeOfDay)

	ok, err := s.redisClient.SetNX(ctx, key, 1, slotHoldTTL).Result()
	if err != nil {
		s.log.Warnf("Booking guard unavailable for %s (failing open): %+v", key, err)
		return nil
	}
	if !ok {
		return ErrSlotReserved
	}

	s.log.Debugf("Reserved booking slot %s", key)
	return nil
}

// Release frees the reservation after the booking attempt resolved.
func (s *BookingGuardService) Release(ctx context.Context, doctorID, date, timeOfDay string) {
	key := slotKey(doctorID, date, timeOfDay)

	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		// TTL will reclaim the key.
		s.log.Warnf("Failed to release booking slot %s: %+v", key, err)
	}
}

func slotKey(doctorID, date, timeOfDay string) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisSlotKeyPrefix, doctorID, date, timeOfDay)
}
