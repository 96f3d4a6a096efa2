// Package ulid makes sortable identifiers used to tag each run in the logs.
package ulid

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"io"
	mathrand "math/rand"
	"os"
	"sync"
	"time"

	oklid "github.com/oklog/ulid/v2"

	"github.com/quietmisdreavus/qmwc/logger"
)

var monotonicPool = sync.Pool{
	New: func() any {
		var seed int64
		err := binary.Read(cryptorand.Reader, binary.BigEndian, &seed)
		if err != nil {
			logger.Setup().Error("crypto/rand error", "err", err)
			os.Exit(10)
		}

		rand := mathrand.New(mathrand.NewSource(seed))
		inc := uint64(rand.Int63())

		return oklid.Monotonic(rand, inc)
	},
}

// MakeULID returns a new ULID with the timestamp t.
func MakeULID(t time.Time) (oklid.ULID, error) {
	mono := monotonicPool.Get().(io.Reader)
	defer monotonicPool.Put(mono)

	return oklid.New(oklid.Timestamp(t), mono)
}
