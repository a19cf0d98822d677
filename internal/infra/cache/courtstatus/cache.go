package courtstatus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

const (
	keyPrefix = "court-status"
	genPrefix = keyPrefix + ":gen"

	// Счетчики поколений живут дольше любой сетки, иначе сброс счетчика
	// может совпасть с еще живым ключом сетки
	minGenTTL = 24 * time.Hour
)

var (
	// ErrCache возвращается при ошибке обращения к Redis
	ErrCache = errors.New("courtstatus.cache: redis error")
)

// Cache кеш сетки статусов площадок по (вид спорта, дата).
//
// Ключ сетки включает три счетчика поколений: общий, вида спорта и дня.
// Инвалидация увеличивает нужный счетчик, поэтому сетка, прочитанная из БД
// до коммита, сохраняется под устаревшим ключом и никогда не будет прочитана.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
	genTTL time.Duration
}

// New создает кеш поверх клиента Redis
func New(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl, genTTL: max(minGenTTL, 2*ttl)}
}

// Get возвращает сетку и версию - ключ, под которым ее нужно сохранять.
// Версию надо получить до чтения из БД. Отсутствие сетки - (nil, version, false, nil)
func (c *Cache) Get(ctx context.Context, sportID string, date time.Time) ([]byte, string, bool, error) {
	version, err := c.version(ctx, sportID, date)
	if err != nil {
		return nil, "", false, err
	}

	val, err := c.client.Get(ctx, version).Bytes()
	if err == redis.Nil {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	return val, version, true, nil
}

// Set сохраняет сетку под версией, полученной из Get
func (c *Cache) Set(ctx context.Context, version string, data []byte) error {
	if err := c.client.Set(ctx, version, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate устаревает сетку конкретного дня
func (c *Cache) Invalidate(ctx context.Context, sportID string, date time.Time) error {
	return c.bump(ctx, DayGenKey(sportID, date))
}

// InvalidateSport устаревает все дни вида спорта
func (c *Cache) InvalidateSport(ctx context.Context, sportID string) error {
	return c.bump(ctx, SportGenKey(sportID))
}

// InvalidateAll устаревает все сетки (после изменения набора слотов)
func (c *Cache) InvalidateAll(ctx context.Context) error {
	return c.bump(ctx, genPrefix)
}

// Ping проверяет соединение
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) version(ctx context.Context, sportID string, date time.Time) (string, error) {
	gens, err := c.client.MGet(ctx, genPrefix, SportGenKey(sportID), DayGenKey(sportID, date)).Result()
	if err != nil {
		return "", fmt.Errorf("%w: mget generations: %v", ErrCache, err)
	}

	parts := make([]string, len(gens))
	for i, g := range gens {
		switch v := g.(type) {
		case string:
			parts[i] = v
		case nil:
			parts[i] = "0"
		default:
			parts[i] = fmt.Sprint(v)
		}
	}

	return fmt.Sprintf("%s:v%s.%s.%s", Key(sportID, date), parts[0], parts[1], parts[2]), nil
}

func (c *Cache) bump(ctx context.Context, genKey string) error {
	if err := c.client.Incr(ctx, genKey).Err(); err != nil {
		return fmt.Errorf("%w: incr %s: %v", ErrCache, genKey, err)
	}
	if err := c.client.Expire(ctx, genKey, c.genTTL).Err(); err != nil {
		return fmt.Errorf("%w: expire %s: %v", ErrCache, genKey, err)
	}
	return nil
}

// Key префикс ключей сетки: court-status:<sport>:<YYYY-MM-DD>
func Key(sportID string, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, sportID, domain.NormalizeDate(date).Format(domain.DateFormat))
}

// SportGenKey счетчик поколений вида спорта
func SportGenKey(sportID string) string {
	return fmt.Sprintf("%s:%s", genPrefix, sportID)
}

// DayGenKey счетчик поколений дня
func DayGenKey(sportID string, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", genPrefix, sportID, domain.NormalizeDate(date).Format(domain.DateFormat))
}
