package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go-clinic-booking/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeHourRepo struct {
	hours []entity.BusinessHour
	err   error
	calls int
}

func (r *fakeHourRepo) Create(ctx context.Context, db *gorm.DB, hour *entity.BusinessHour) error {
	return nil
}

func (r *fakeHourRepo) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.BusinessHour, error) {
	return nil, nil
}

func (r *fakeHourRepo) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.BusinessHour, error) {
	r.calls++
	return r.hours, r.err
}

func (r *fakeHourRepo) FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, day entity.Weekday) (*entity.BusinessHour, error) {
	return nil, nil
}

func (r *fakeHourRepo) Update(ctx context.Context, db *gorm.DB, hour *entity.BusinessHour) error {
	return nil
}

func (r *fakeHourRepo) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	return 0, nil
}

func TestScheduleCache_LoadWithoutRedisReadsRepository(t *testing.T) {
	repo := &fakeHourRepo{hours: []entity.BusinessHour{
		plainDay(entity.Monday, clock(9, 0), clock(17, 0)),
		plainDay(entity.Thursday, clock(10, 0), clock(14, 0)),
	}}
	cache := NewScheduleCache(nil, nil, quietLogger(), repo, time.Minute)

	schedule, err := cache.Load(context.Background(), uuid.New())
	require.NoError(t, err)

	_, ok := schedule.EntryFor(entity.Thursday)
	assert.True(t, ok)
	_, ok = schedule.EntryFor(entity.Tuesday)
	assert.False(t, ok)
	assert.Equal(t, 1, repo.calls)

	// Invalidate is a no-op without redis.
	cache.Invalidate(context.Background(), uuid.New())
}

func TestScheduleCache_LoadPropagatesRepositoryError(t *testing.T) {
	boom := errors.New("connection refused")
	cache := NewScheduleCache(nil, nil, quietLogger(), &fakeHourRepo{err: boom}, time.Minute)

	schedule, err := cache.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.True(t, schedule.IsEmpty())
}

func TestScheduleKey(t *testing.T) {
	id := uuid.MustParse("7f9c24e8-3b12-4fef-91e1-6c1b7a6a0d11")
	assert.Equal(t, "doctor:hours:7f9c24e8-3b12-4fef-91e1-6c1b7a6a0d11", scheduleKey(id))
}

func newRedisScheduleCache(t *testing.T, repo *fakeHourRepo) (*ScheduleCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewScheduleCache(nil, client, quietLogger(), repo, time.Minute), mr
}

func TestScheduleCache_WithRedis(t *testing.T) {
	hours := []entity.BusinessHour{
		lunchDay(entity.Monday, clock(9, 0), clock(12, 0), clock(13, 0), clock(19, 0)),
		plainDay(entity.Friday, clock(8, 0), clock(16, 0)),
	}

	tests := []struct {
		name      string
		prepare   func(t *testing.T, cache *ScheduleCache, mr *miniredis.Miniredis, doctorID uuid.UUID)
		wantCalls int
	}{
		{
			name:      "miss populates the cache",
			prepare:   func(t *testing.T, cache *ScheduleCache, mr *miniredis.Miniredis, doctorID uuid.UUID) {},
			wantCalls: 1,
		},
		{
			name: "hit skips the repository",
			prepare: func(t *testing.T, cache *ScheduleCache, mr *miniredis.Miniredis, doctorID uuid.UUID) {
				_, err := cache.Load(context.Background(), doctorID)
				require.NoError(t, err)
			},
			wantCalls: 1,
		},
		{
			name: "invalidate forces a reload",
			prepare: func(t *testing.T, cache *ScheduleCache, mr *miniredis.Miniredis, doctorID uuid.UUID) {
				_, err := cache.Load(context.Background(), doctorID)
				require.NoError(t, err)
				cache.Invalidate(context.Background(), doctorID)
				assert.False(t, mr.Exists(scheduleKey(doctorID)))
			},
			wantCalls: 2,
		},
		{
			name: "corrupt payload is discarded",
			prepare: func(t *testing.T, cache *ScheduleCache, mr *miniredis.Miniredis, doctorID uuid.UUID) {
				require.NoError(t, mr.Set(scheduleKey(doctorID), "not json"))
			},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeHourRepo{hours: hours}
			cache, mr := newRedisScheduleCache(t, repo)
			doctorID := uuid.New()

			tt.prepare(t, cache, mr, doctorID)
			schedule, err := cache.Load(context.Background(), doctorID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, repo.calls)

			mon, ok := schedule.EntryFor(entity.Monday)
			require.True(t, ok)
			assert.Equal(t, clock(9, 0), mon.OpeningTime)
			assert.Equal(t, entity.SomeClock(clock(12, 0)), mon.LunchStartTime)
			assert.Equal(t, entity.SomeClock(clock(13, 0)), mon.LunchEndTime)
			assert.Equal(t, clock(19, 0), mon.ClosingTime)

			fri, ok := schedule.EntryFor(entity.Friday)
			require.True(t, ok)
			assert.False(t, fri.HasLunch())

			raw, err := mr.Get(scheduleKey(doctorID))
			require.NoError(t, err)
			assert.Contains(t, raw, `"lunch_end_time":"13:00"`)
			assert.Greater(t, mr.TTL(scheduleKey(doctorID)), time.Duration(0))
		})
	}
}

func TestScheduleCache_CachedScheduleServesLoads(t *testing.T) {
	repo := &fakeHourRepo{hours: []entity.BusinessHour{
		lunchDay(entity.Monday, clock(9, 0), clock(12, 0), clock(13, 0), clock(19, 0)),
	}}
	cache, _ := newRedisScheduleCache(t, repo)
	doctorID := uuid.New()

	first, err := cache.Load(context.Background(), doctorID)
	require.NoError(t, err)

	// The repository going away must not matter while the cache is warm.
	repo.err = errors.New("connection refused")
	second, err := cache.Load(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	checker := NewAvailabilityChecker()
	now := monday(7, 0)
	for _, at := range []time.Time{monday(12, 30), monday(15, 0)} {
		assert.Equal(t,
			checker.IsAvailable(first, pendingRequest(at, now), now),
			checker.IsAvailable(second, pendingRequest(at, now), now),
			at.String())
	}
}
