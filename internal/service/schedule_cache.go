package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// RedisScheduleKeyPrefix prefixes the cached weekly schedule of a doctor
	RedisScheduleKeyPrefix = "doctor:hours:"

	// Timeout for individual Redis operations
	redisCacheTimeout = 2 * time.Second
)

// ScheduleLoader provides a doctor's weekly schedule to the booking engine.
type ScheduleLoader interface {
	Load(ctx context.Context, doctorID uuid.UUID) (entity.WeeklySchedule, error)
	Invalidate(ctx context.Context, doctorID uuid.UUID)
}

// ScheduleCache reads business hours through Redis, falling back to PostgreSQL.
//
// Redis is an optimisation only: any cache failure is logged and the schedule is
// served from the database. A nil redis client disables caching.
type ScheduleCache struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	hourRepo    repository.BusinessHourRepository
	ttl         time.Duration
}

func NewScheduleCache(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	hourRepo repository.BusinessHourRepository,
	ttl time.Duration,
) *ScheduleCache {
	return &ScheduleCache{
		db:          db,
		redisClient: redisClient,
		log:         log,
		hourRepo:    hourRepo,
		ttl:         ttl,
	}
}

func scheduleKey(doctorID uuid.UUID) string {
	return fmt.Sprintf("%s%s", RedisScheduleKeyPrefix, doctorID)
}

// Load returns the doctor's schedule, populating the cache on a miss.
func (s *ScheduleCache) Load(ctx context.Context, doctorID uuid.UUID) (entity.WeeklySchedule, error) {
	if hours, ok := s.readCache(ctx, doctorID); ok {
		return entity.NewWeeklySchedule(hours), nil
	}

	hours, err := s.hourRepo.FindByDoctorID(ctx, s.db, doctorID)
	if err != nil {
		s.log.Warnf("Failed to load business hours for doctor %s: %+v", doctorID, err)
		return entity.WeeklySchedule{}, err
	}

	s.writeCache(ctx, doctorID, hours)
	return entity.NewWeeklySchedule(hours), nil
}

// Invalidate drops the cached schedule. Called after every business hour write.
func (s *ScheduleCache) Invalidate(ctx context.Context, doctorID uuid.UUID) {
	if s.redisClient == nil {
		return
	}

	cacheCtx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := s.redisClient.Del(cacheCtx, scheduleKey(doctorID)).Err(); err != nil {
		s.log.Warnf("Failed to invalidate schedule cache for doctor %s (non-fatal): %+v", doctorID, err)
		return
	}
	s.log.Debugf("Invalidated schedule cache for doctor %s", doctorID)
}

func (s *ScheduleCache) readCache(ctx context.Context, doctorID uuid.UUID) ([]entity.BusinessHour, bool) {
	if s.redisClient == nil {
		return nil, false
	}

	cacheCtx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := s.redisClient.Get(cacheCtx, scheduleKey(doctorID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Failed to read schedule cache for doctor %s: %+v", doctorID, err)
		}
		return nil, false
	}

	var hours []entity.BusinessHour
	if err := json.Unmarshal(raw, &hours); err != nil {
		s.log.Warnf("Discarding corrupt schedule cache for doctor %s: %+v", doctorID, err)
		return nil, false
	}
	return hours, true
}

func (s *ScheduleCache) writeCache(ctx context.Context, doctorID uuid.UUID, hours []entity.BusinessHour) {
	if s.redisClient == nil {
		return
	}

	raw, err := json.Marshal(hours)
	if err != nil {
		s.log.Warnf("Failed to encode schedule for doctor %s: %+v", doctorID, err)
		return
	}

	cacheCtx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := s.redisClient.Set(cacheCtx, scheduleKey(doctorID), raw, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to cache schedule for doctor %s (non-fatal): %+v", doctorID, err)
		return
	}
	s.log.Debugf("Cached schedule for doctor %s: %d entries, TTL=%v", doctorID, len(hours), s.ttl)
}
