package prefs

// Manager exposes one typed put and one typed get per Kind over an Adapter.
// Puts always overwrite; write-once enforcement belongs to the caller.
// Each getter has two forms: Get<Kind>(key) falls back to the library
// default, Get<Kind>Or(key, def) falls back to def.
type Manager struct {
	a *Adapter
}

// NewManager builds a Manager over a native store and object codec.
func NewManager(native NativeStore, codec Codec) *Manager {
	return &Manager{a: NewAdapter(native, codec)}
}

func (m *Manager) PutString(key, v string) error        { return m.a.Put(key, KindString, v) }
func (m *Manager) PutInt(key string, v int32) error     { return m.a.Put(key, KindInt, v) }
func (m *Manager) PutFloat(key string, v float32) error { return m.a.Put(key, KindFloat, v) }
func (m *Manager) PutDouble(key string, v float64) error {
	return m.a.Put(key, KindDouble, v)
}
func (m *Manager) PutLong(key string, v int64) error { return m.a.Put(key, KindLong, v) }
func (m *Manager) PutBool(key string, v bool) error  { return m.a.Put(key, KindBool, v) }

// PutObject stores v as the codec's string payload.
func (m *Manager) PutObject(key string, v any) error { return m.a.Put(key, KindObject, v) }

func (m *Manager) GetString(key string) (string, error) { return m.GetStringOr(key, DefaultString) }

func (m *Manager) GetStringOr(key, def string) (string, error) {
	v, err := m.a.Get(key, KindString, def)
	if err != nil {
		return def, err
	}
	return v.(string), nil
}

func (m *Manager) GetInt(key string) (int32, error) { return m.GetIntOr(key, DefaultInt) }

func (m *Manager) GetIntOr(key string, def int32) (int32, error) {
	v, err := m.a.Get(key, KindInt, def)
	if err != nil {
		return def, err
	}
	return v.(int32), nil
}

func (m *Manager) GetFloat(key string) (float32, error) { return m.GetFloatOr(key, DefaultFloat) }

func (m *Manager) GetFloatOr(key string, def float32) (float32, error) {
	v, err := m.a.Get(key, KindFloat, def)
	if err != nil {
		return def, err
	}
	return v.(float32), nil
}

func (m *Manager) GetDouble(key string) (float64, error) { return m.GetDoubleOr(key, DefaultDouble) }

func (m *Manager) GetDoubleOr(key string, def float64) (float64, error) {
	v, err := m.a.Get(key, KindDouble, def)
	if err != nil {
		return def, err
	}
	return v.(float64), nil
}

func (m *Manager) GetLong(key string) (int64, error) { return m.GetLongOr(key, DefaultLong) }

func (m *Manager) GetLongOr(key string, def int64) (int64, error) {
	v, err := m.a.Get(key, KindLong, def)
	if err != nil {
		return def, err
	}
	return v.(int64), nil
}

func (m *Manager) GetBool(key string) (bool, error) { return m.GetBoolOr(key, DefaultBool) }

func (m *Manager) GetBoolOr(key string, def bool) (bool, error) {
	v, err := m.a.Get(key, KindBool, def)
	if err != nil {
		return def, err
	}
	return v.(bool), nil
}

// GetObject decodes the stored object into target (a non-nil pointer) and
// reports whether it did. Absent keys and undecodable payloads both yield false.
func (m *Manager) GetObject(key string, target any) (bool, error) {
	return m.a.GetObject(key, target)
}

// RemovePref deletes key if present.
func (m *Manager) RemovePref(key string) error { return m.a.Remove(key) }

// ClearAllPrefs deletes every preference atomically.
func (m *Manager) ClearAllPrefs() error { return m.a.Clear() }

// DoesKeyExist reports whether key holds a value of any kind.
func (m *Manager) DoesKeyExist(key string) (bool, error) { return m.a.Exists(key) }

// Keys lists the stored preference names in sorted order.
func (m *Manager) Keys() ([]string, error) { return m.a.Keys() }

// Close releases the backing store.
func (m *Manager) Close() error { return m.a.Close() }
