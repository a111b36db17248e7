package membership

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss is returned when no member set is cached for a project.
	ErrCacheMiss = errors.New("membership cache miss")

	// ErrStaleGeneration is returned by SetMembers when the project was
	// invalidated after the caller read its generation.
	ErrStaleGeneration = errors.New("membership cache generation changed")
)

// Cache holds the accepted member ids of each project. It is a materialized
// view of the applications table and is dropped whenever that table changes
// for a project.
//
// Every Invalidate bumps the project's generation. A writer reads the
// generation before loading members from storage and passes it to
// SetMembers, which refuses the write if an invalidation happened in between.
type Cache interface {
	Members(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
	Generation(ctx context.Context, projectID uuid.UUID) (uint64, error)
	SetMembers(ctx context.Context, projectID uuid.UUID, generation uint64, memberIDs []uuid.UUID, ttl time.Duration) error
	Invalidate(ctx context.Context, projectID uuid.UUID) error
}

const (
	membersKeyPrefix    = "membership:project:"
	membersKeySuffix    = ":members"
	generationKeySuffix = ":gen"

	// emptySetMarker keeps a project with no accepted members cacheable,
	// since Redis deletes empty sets.
	emptySetMarker = "-"

	// generationTTL only has to outlive the window between a generation
	// read and the matching SetMembers.
	generationTTL = 24 * time.Hour
)

// setMembersScript replaces the member set only if the generation still
// matches ARGV[1]. ARGV[2] is the ttl in milliseconds, ARGV[3:] the members.
var setMembersScript = redis.NewScript(`
local current = redis.call("GET", KEYS[2])
if current == false then
	current = "0"
end
if current ~= ARGV[1] then
	return 0
end
redis.call("DEL", KEYS[1])
redis.call("SADD", KEYS[1], unpack(ARGV, 3))
local ttl = tonumber(ARGV[2])
if ttl > 0 then
	redis.call("PEXPIRE", KEYS[1], ttl)
end
return 1
`)

// invalidateScript bumps the generation and drops the member set atomically.
var invalidateScript = redis.NewScript(`
redis.call("INCR", KEYS[2])
redis.call("PEXPIRE", KEYS[2], ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`)

// redisCache stores each member set as a Redis SET next to a generation
// counter.
type redisCache struct {
	client redis.UniversalClient
}

// NewRedisCache creates a Redis backed membership cache.
func NewRedisCache(client redis.UniversalClient) Cache {
	return &redisCache{client: client}
}

func membersKey(projectID uuid.UUID) string {
	return membersKeyPrefix + projectID.String() + membersKeySuffix
}

func generationKey(projectID uuid.UUID) string {
	return membersKeyPrefix + projectID.String() + generationKeySuffix
}

func (c *redisCache) Members(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	vals, err := c.client.SMembers(ctx, membersKey(projectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read member set: %w", err)
	}
	if len(vals) == 0 {
		return nil, ErrCacheMiss
	}

	ids := make([]uuid.UUID, 0, len(vals))
	for _, v := range vals {
		if v == emptySetMarker {
			continue
		}
		id, err := uuid.Parse(v)
		if err != nil {
			// A corrupt entry invalidates the whole set.
			return nil, ErrCacheMiss
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *redisCache) Generation(ctx context.Context, projectID uuid.UUID) (uint64, error) {
	gen, err := c.client.Get(ctx, generationKey(projectID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read member set generation: %w", err)
	}
	return gen, nil
}

func (c *redisCache) SetMembers(ctx context.Context, projectID uuid.UUID, generation uint64, memberIDs []uuid.UUID, ttl time.Duration) error {
	args := make([]any, 0, len(memberIDs)+3)
	args = append(args, strconv.FormatUint(generation, 10), ttl.Milliseconds(), emptySetMarker)
	for _, id := range memberIDs {
		args = append(args, id.String())
	}

	keys := []string{membersKey(projectID), generationKey(projectID)}
	written, err := setMembersScript.Run(ctx, c.client, keys, args...).Int()
	if err != nil {
		return fmt.Errorf("write member set: %w", err)
	}
	if written == 0 {
		return ErrStaleGeneration
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	keys := []string{membersKey(projectID), generationKey(projectID)}
	if err := invalidateScript.Run(ctx, c.client, keys, generationTTL.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("invalidate member set: %w", err)
	}
	return nil
}

type memoryEntry struct {
	members   []uuid.UUID
	expiresAt time.Time
}

// memoryCache is an in-process Cache used when Redis is not configured.
type memoryCache struct {
	mu          sync.RWMutex
	entries     map[uuid.UUID]memoryEntry
	generations map[uuid.UUID]uint64
	now         func() time.Time
}

// NewMemoryCache creates an in-process membership cache.
func NewMemoryCache() Cache {
	return &memoryCache{
		entries:     make(map[uuid.UUID]memoryEntry),
		generations: make(map[uuid.UUID]uint64),
		now:         time.Now,
	}
}

func (c *memoryCache) Members(_ context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	c.mu.RLock()
	entry, ok := c.entries[projectID]
	c.mu.RUnlock()

	if !ok || (!entry.expiresAt.IsZero() && c.now().After(entry.expiresAt)) {
		return nil, ErrCacheMiss
	}
	out := make([]uuid.UUID, len(entry.members))
	copy(out, entry.members)
	return out, nil
}

func (c *memoryCache) Generation(_ context.Context, projectID uuid.UUID) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[projectID], nil
}

func (c *memoryCache) SetMembers(_ context.Context, projectID uuid.UUID, generation uint64, memberIDs []uuid.UUID, ttl time.Duration) error {
	entry := memoryEntry{members: make([]uuid.UUID, len(memberIDs))}
	copy(entry.members, memberIDs)
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[projectID] != generation {
		return ErrStaleGeneration
	}
	c.entries[projectID] = entry
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, projectID uuid.UUID) error {
	c.mu.Lock()
	c.generations[projectID]++
	delete(c.entries, projectID)
	c.mu.Unlock()
	return nil
}
