package dprefs

import "dprefs/internal/prefs"

func (p *Prefs) PutString(key, v string) error {
	return p.write(key, func(m *prefs.Manager) error { return m.PutString(key, v) })
}

func (p *Prefs) PutInt(key string, v int32) error {
	return p.write(key, func(m *prefs.Manager) error { return m.PutInt(key, v) })
}

func (p *Prefs) PutFloat(key string, v float32) error {
	return p.write(key, func(m *prefs.Manager) error { return m.PutFloat(key, v) })
}

func (p *Prefs) PutDouble(key string, v float64) error {
	return p.write(key, func(m *prefs.Manager) error { return m.PutDouble(key, v) })
}

func (p *Prefs) PutLong(key string, v int64) error {
	return p.write(key, func(m *prefs.Manager) error { return m.PutLong(key, v) })
}

func (p *Prefs) PutBool(key string, v bool) error {
	return p.write(key, func(m *prefs.Manager) error { return m.PutBool(key, v) })
}

func (p *Prefs) PutObject(key string, v any) error {
	return p.write(key, func(m *prefs.Manager) error { return m.PutObject(key, v) })
}

func (p *Prefs) GetString(key string) (string, error) {
	return p.GetStringOr(key, prefs.DefaultString)
}

func (p *Prefs) GetStringOr(key, def string) (v string, err error) {
	v = def
	err = p.read(func(m *prefs.Manager) error {
		v, err = m.GetStringOr(key, def)
		return err
	})
	return v, err
}

func (p *Prefs) GetInt(key string) (int32, error) {
	return p.GetIntOr(key, prefs.DefaultInt)
}

func (p *Prefs) GetIntOr(key string, def int32) (v int32, err error) {
	v = def
	err = p.read(func(m *prefs.Manager) error {
		v, err = m.GetIntOr(key, def)
		return err
	})
	return v, err
}

func (p *Prefs) GetFloat(key string) (float32, error) {
	return p.GetFloatOr(key, prefs.DefaultFloat)
}

func (p *Prefs) GetFloatOr(key string, def float32) (v float32, err error) {
	v = def
	err = p.read(func(m *prefs.Manager) error {
		v, err = m.GetFloatOr(key, def)
		return err
	})
	return v, err
}

func (p *Prefs) GetDouble(key string) (float64, error) {
	return p.GetDoubleOr(key, prefs.DefaultDouble)
}

func (p *Prefs) GetDoubleOr(key string, def float64) (v float64, err error) {
	v = def
	err = p.read(func(m *prefs.Manager) error {
		v, err = m.GetDoubleOr(key, def)
		return err
	})
	return v, err
}

func (p *Prefs) GetLong(key string) (int64, error) {
	return p.GetLongOr(key, prefs.DefaultLong)
}

func (p *Prefs) GetLongOr(key string, def int64) (v int64, err error) {
	v = def
	err = p.read(func(m *prefs.Manager) error {
		v, err = m.GetLongOr(key, def)
		return err
	})
	return v, err
}

func (p *Prefs) GetBool(key string) (bool, error) {
	return p.GetBoolOr(key, prefs.DefaultBool)
}

func (p *Prefs) GetBoolOr(key string, def bool) (v bool, err error) {
	v = def
	err = p.read(func(m *prefs.Manager) error {
		v, err = m.GetBoolOr(key, def)
		return err
	})
	return v, err
}

// GetObject decodes the object stored under key into target, a non-nil
// pointer. It reports false when the key is absent or undecodable.
func (p *Prefs) GetObject(key string, target any) (ok bool, err error) {
	err = p.read(func(m *prefs.Manager) error {
		ok, err = m.GetObject(key, target)
		return err
	})
	return ok, err
}

// GetObjectAs returns the object stored under key decoded as T, or nil when
// it is absent or does not decode as T.
func GetObjectAs[T any](p *Prefs, key string) (*T, error) {
	var v T
	ok, err := p.GetObject(key, &v)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func (p *Prefs) RemovePref(key string) error {
	return p.read(func(m *prefs.Manager) error { return m.RemovePref(key) })
}

func (p *Prefs) ClearAllPrefs() error {
	return p.read(func(m *prefs.Manager) error { return m.ClearAllPrefs() })
}

func (p *Prefs) DoesKeyExist(key string) (ok bool, err error) {
	err = p.read(func(m *prefs.Manager) error {
		ok, err = m.DoesKeyExist(key)
		return err
	})
	return ok, err
}

// Keys lists stored preference names in sorted order.
func (p *Prefs) Keys() (keys []string, err error) {
	err = p.read(func(m *prefs.Manager) error {
		keys, err = m.Keys()
		return err
	})
	return keys, err
}
