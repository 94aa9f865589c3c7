package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gostablebridge/config"
	"gostablebridge/types"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
)

var pool *redis.Pool

func timeoutDialOptions() []redis.DialOption {
	return []redis.DialOption{
		redis.DialConnectTimeout(5 * time.Second),
		redis.DialReadTimeout(5 * time.Second),
		redis.DialWriteTimeout(5 * time.Second),
	}
}

func Init() {
	redisAddr := fmt.Sprintf("%s:%d", config.Config.Server.RedisHost, config.Config.Server.RedisPort)
	pool = &redis.Pool{
		MaxIdle: 5,
		Dial:    func() (redis.Conn, error) { return redis.Dial("tcp", redisAddr, timeoutDialOptions()...) },
	}
}

const (
	snapshotKey    = "pool:snapshot"
	providerPrefix = "pool:provider:"
	releasePrefix  = "pool:release:"
	lockPrefix     = "pool:lock:"
	eventsKey      = "pool:events"
)

func SaveSnapshot(snap *types.PoolSnapshot) error {
	if snap == nil {
		return errors.New("null object to store")
	}
	return setJSON(snapshotKey, snap)
}

// LoadSnapshot returns nil without error when no snapshot was saved yet.
func LoadSnapshot() (*types.PoolSnapshot, error) {
	conn := pool.Get()
	defer conn.Close()

	raw, err := redis.Bytes(conn.Do("GET", snapshotKey))
	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}
	if err != nil {
		log.Printf("error Redis GET: %s", err.Error())
		return nil, err
	}

	var snap types.PoolSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func SaveProvider(rec *types.ProviderRecord) error {
	if rec == nil || rec.Address == "" {
		return errors.New("provider record needs an address")
	}
	return setJSON(providerPrefix+strings.ToLower(rec.Address), rec)
}

func LoadProviders() ([]*types.ProviderRecord, error) {
	var recs []*types.ProviderRecord
	err := scanJSON(providerPrefix+"*", func(raw []byte) error {
		var rec types.ProviderRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		recs = append(recs, &rec)
		return nil
	})
	return recs, err
}

func SaveRelease(rec *types.BridgeRelease) error {
	if rec == nil {
		return errors.New("null object to store")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	return setJSON(fmt.Sprintf("%s%d", releasePrefix, rec.Nonce), rec)
}

func LoadReleases() ([]*types.BridgeRelease, error) {
	var recs []*types.BridgeRelease
	err := scanJSON(releasePrefix+"*", func(raw []byte) error {
		var rec types.BridgeRelease
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		recs = append(recs, &rec)
		return nil
	})
	return recs, err
}

func SaveLock(rec *types.BridgeLock) error {
	if rec == nil {
		return errors.New("null object to store")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	return setJSON(fmt.Sprintf("%s%d", lockPrefix, rec.Nonce), rec)
}

func LoadLocks() ([]*types.BridgeLock, error) {
	var recs []*types.BridgeLock
	err := scanJSON(lockPrefix+"*", func(raw []byte) error {
		var rec types.BridgeLock
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		recs = append(recs, &rec)
		return nil
	})
	return recs, err
}

// AppendEvent pushes one journal entry. The journal is append-only and is
// never trimmed or rewritten by the bridge.
func AppendEvent(ev *types.BridgeEvent) error {
	conn := pool.Get()
	defer conn.Close()

	if ev == nil {
		return errors.New("null object to store")
	}
	evJSON, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("cannot marshal event to JSON: %s", err.Error())
	}
	if _, err := conn.Do("RPUSH", eventsKey, evJSON); err != nil {
		log.Printf("error Redis RPUSH: %s", err.Error())
		return err
	}
	return nil
}

// RecentEvents returns up to count newest journal entries, oldest first.
func RecentEvents(count int) ([]*types.BridgeEvent, error) {
	conn := pool.Get()
	defer conn.Close()

	raws, err := redis.ByteSlices(conn.Do("LRANGE", eventsKey, -count, -1))
	if err != nil && !errors.Is(err, redis.ErrNil) {
		log.Printf("error Redis LRANGE: %s", err.Error())
		return nil, err
	}

	evs := make([]*types.BridgeEvent, 0, len(raws))
	for _, raw := range raws {
		var ev types.BridgeEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		evs = append(evs, &ev)
	}
	return evs, nil
}

func setJSON(key string, v interface{}) error {
	conn := pool.Get()
	defer conn.Close()

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot marshal record to JSON: %s", err.Error())
	}
	if _, err := conn.Do("SET", key, raw); err != nil {
		log.Printf("error Redis SET: %s", err.Error())
		return err
	}
	return nil
}

func scanJSON(pattern string, visit func(raw []byte) error) error {
	conn := pool.Get()
	defer conn.Close()

	var cursor int64
	for {
		values, err := redis.Values(conn.Do("SCAN", cursor, "MATCH", pattern))
		if err != nil {
			return err
		}

		var keys []string
		values, err = redis.Scan(values, &cursor, &keys)
		if err != nil {
			return err
		}

		for _, key := range keys {
			raw, err := redis.Bytes(conn.Do("GET", key))
			if errors.Is(err, redis.ErrNil) {
				// record expired or deleted between SCAN and GET
				continue
			}
			if err != nil {
				log.Printf("error Redis GET: %s", err.Error())
				return err
			}
			if err := visit(raw); err != nil {
				return err
			}
		}

		if cursor == 0 {
			break
		}
	}
	return nil
}
