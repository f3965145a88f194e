package dprefs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dprefs/internal/config"
	"dprefs/internal/masterkey"
	"dprefs/internal/prefs"
	"dprefs/internal/securestore"
	boltstore "dprefs/internal/store/bolt"
)

// DBFile is the database file created under StorageContext.DataDir.
const DBFile = "dprefs.db"

// StorageContext is everything Initialize needs to bind a preference store:
// where it lives, which named container to use, and the key it is sealed to.
type StorageContext struct {
	DataDir     string
	Name        string
	MasterKey   *masterkey.MasterKey
	Codec       prefs.Codec   // nil selects JSON
	OpenTimeout time.Duration // zero selects the bbolt default
}

// NewStorageContext builds a StorageContext from configuration, creating the
// data directory and loading (or generating) the master key inside it.
func NewStorageContext(cfg *config.Config) (StorageContext, error) {
	if err := cfg.Validate(); err != nil {
		return StorageContext{}, fmt.Errorf("invalid config: %w", err)
	}
	dataDir := config.ExpandHome(cfg.Store.DataDir)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return StorageContext{}, fmt.Errorf("creating data dir: %w", err)
	}
	mk, err := masterkey.Load(dataDir)
	if err != nil {
		return StorageContext{}, fmt.Errorf("master key: %w", err)
	}
	codec, err := prefs.CodecByName(cfg.Codec.Format)
	if err != nil {
		return StorageContext{}, err
	}
	return StorageContext{
		DataDir:     dataDir,
		Name:        cfg.Store.Name,
		MasterKey:   mk,
		Codec:       codec,
		OpenTimeout: cfg.OpenTimeoutDuration(),
	}, nil
}

// open creates the manager for sc: bbolt file, encrypted container, codec.
func (sc StorageContext) open() (*prefs.Manager, error) {
	if sc.DataDir == "" {
		return nil, fmt.Errorf("storage context: data dir is required")
	}
	if sc.MasterKey == nil {
		return nil, fmt.Errorf("storage context: master key is required")
	}
	name := sc.Name
	if name == "" {
		name = config.Defaults().Store.Name
	}

	st, err := boltstore.Open(filepath.Join(sc.DataDir, DBFile), sc.OpenTimeout)
	if err != nil {
		return nil, err
	}
	ss, err := securestore.Open(st, name, sc.MasterKey)
	if err != nil {
		st.Close()
		return nil, err
	}
	return prefs.NewManager(ss, sc.Codec), nil
}
