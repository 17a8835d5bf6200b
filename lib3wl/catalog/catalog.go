package catalog

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/2x3systems/go3wl/go3wl"
	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

/***

Color catalog database format:

	gDictStateKey => varint(size)

	kColorPrefix, Color (8 bytes, big endian) => varint(column)
	...

Columns are issued densely from 0, so a healthy catalog has exactly size color entries whose columns are a
permutation of 0..size-1.  Because the catalog persists, separate runs against the same DbPathName share one
feature space: the Gram matrices of different runs can be compared column for column.

***/

var (
	gDictStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kColorPrefix = byte(0x01)
	kColorKeySz  = 9
)

// DictionaryOpts specifies params for opening a color catalog.
type DictionaryOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// dictionary is a badger-backed go3wl.Dictionary, with a write-through cache of every color it holds.
type dictionary struct {
	mu       sync.Mutex
	db       *badger.DB
	readOnly bool
	size     uint32
	cache    map[go3wl.Color]uint32
}

// OpenDictionary opens a new or existing color catalog.
func OpenDictionary(opts DictionaryOpts) (go3wl.Dictionary, error) {
	dict := &dictionary{
		readOnly: opts.ReadOnly,
		cache:    make(map[go3wl.Color]uint32),
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed since writes are serialized by dict.mu
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(go3wl.ErrBadDictionaryParam, "DbPathName must be specified for a read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	dict.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	if err = dict.loadState(); err != nil {
		dict.Close()
		return nil, err
	}

	return dict, nil
}

func formColorKey(c go3wl.Color) []byte {
	var key [kColorKeySz]byte
	key[0] = kColorPrefix
	binary.BigEndian.PutUint64(key[1:], uint64(c))
	return key[:]
}

func decodeVarint(val []byte) (uint32, error) {
	x, n := proto.DecodeVarint(val)
	if n == 0 || n != len(val) || x > uint64(^uint32(0)) {
		return 0, errors.Wrapf(go3wl.ErrDictionaryCorrupt, "bad varint %x", val)
	}
	return uint32(x), nil
}

// loadState reads the stored size and all stored colors, checking that they agree.
func (dict *dictionary) loadState() error {
	return dict.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gDictStateKey)
		if err == badger.ErrKeyNotFound {
			dict.size = 0
		} else if err != nil {
			return err
		} else {
			err = item.Value(func(val []byte) error {
				dict.size, err = decodeVarint(val)
				return err
			})
			if err != nil {
				return err
			}
		}

		issued := make([]bool, dict.size)
		prefix := []byte{kColorPrefix}
		itr := txn.NewIterator(badger.DefaultIteratorOptions)
		defer itr.Close()
		for itr.Seek(prefix); itr.ValidForPrefix(prefix); itr.Next() {
			item := itr.Item()
			key := item.Key()
			if len(key) != kColorKeySz {
				return errors.Wrapf(go3wl.ErrDictionaryCorrupt, "bad color key %x", key)
			}
			c := go3wl.Color(binary.BigEndian.Uint64(key[1:]))

			var col uint32
			err = item.Value(func(val []byte) error {
				col, err = decodeVarint(val)
				return err
			})
			if err != nil {
				return err
			}
			if col >= dict.size || issued[col] {
				return errors.Wrapf(go3wl.ErrDictionaryCorrupt, "color %d has column %d (size %d)", c, col, dict.size)
			}
			issued[col] = true
			dict.cache[c] = col
		}

		if uint32(len(dict.cache)) != dict.size {
			return errors.Wrapf(go3wl.ErrDictionaryCorrupt, "%d colors stored but size is %d", len(dict.cache), dict.size)
		}
		return nil
	})
}

func (dict *dictionary) Insert(c go3wl.Color) uint32 {
	dict.mu.Lock()
	defer dict.mu.Unlock()

	if col, exists := dict.cache[c]; exists {
		return col
	}
	if dict.readOnly {
		panic(errors.Wrapf(go3wl.ErrDictionaryReadOnly, "inserting color %d", c))
	}

	col := dict.size
	err := dict.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(formColorKey(c), proto.EncodeVarint(uint64(col))); err != nil {
			return err
		}
		return txn.Set(gDictStateKey, proto.EncodeVarint(uint64(col+1)))
	})
	if err != nil {
		panic(err)
	}

	dict.size++
	dict.cache[c] = col
	return col
}

func (dict *dictionary) Lookup(c go3wl.Color) (uint32, bool) {
	dict.mu.Lock()
	col, exists := dict.cache[c]
	dict.mu.Unlock()
	return col, exists
}

func (dict *dictionary) Contains(c go3wl.Color) bool {
	_, exists := dict.Lookup(c)
	return exists
}

func (dict *dictionary) Size() uint32 {
	dict.mu.Lock()
	defer dict.mu.Unlock()
	return dict.size
}

func (dict *dictionary) Close() error {
	dict.mu.Lock()
	defer dict.mu.Unlock()

	var err error
	if dict.db != nil {
		err = dict.db.Close()
		dict.db = nil
	}
	return err
}
