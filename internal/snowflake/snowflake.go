package snowflake

import (
	"fmt"
	"sync"
	"time"
)

// Layout, high to low: 42 bits unix-milli timestamp, 10 bits worker, 12 bits
// per-millisecond increment.
const (
	timestampBits int64 = 42
	workerBits    int64 = 10
	incrementBits       = 64 - timestampBits - workerBits

	timestampShift = 64 - timestampBits
	workerShift    = timestampShift - workerBits

	maxWorker    = 1<<workerBits - 1
	maxIncrement = 1<<incrementBits - 1
)

type Snowflake struct {
	Timestamp int64
	WorkerID  int64
	Increment int64
}

var (
	mutex         sync.Mutex
	lastTimestamp int64
	lastIncrement int64

	workerID    int64
	hasWorkerID bool
)

func Setup(id int64) error {
	if id > maxWorker {
		return fmt.Errorf("worker ID value exceeds maximum value of [%d]", int64(maxWorker))
	}
	if hasWorkerID {
		return fmt.Errorf("worker ID for snowflake generator has been already set")
	}

	workerID = id
	hasWorkerID = true
	return nil
}

func Generate() (int64, error) {
	mutex.Lock()
	defer mutex.Unlock()

	timestamp := time.Now().UnixMilli()
	if timestamp == lastTimestamp {
		lastIncrement++
		if lastIncrement > maxIncrement {
			return 0, fmt.Errorf("increment overflow after increment reached %d", lastIncrement)
		}
	} else {
		lastIncrement = 0
		lastTimestamp = timestamp
	}

	return timestamp<<timestampShift | workerID<<workerShift | lastIncrement, nil
}

func Extract(id int64) Snowflake {
	return Snowflake{
		Timestamp: id >> timestampShift,
		WorkerID:  (id >> workerShift) & maxWorker,
		Increment: id & maxIncrement,
	}
}

// ExtractTime returns the creation time encoded in the ID. Rows keyed by
// snowflakes don't carry a separate created_at column.
func ExtractTime(id int64) time.Time {
	return time.UnixMilli(id >> timestampShift)
}
