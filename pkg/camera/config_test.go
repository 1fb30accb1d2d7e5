package camera

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("DefaultConfig() should validate, got %v", errs)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "default",
			mutate: func(c *Config) {},
		},
		{
			name:   "small but legal resolution",
			mutate: func(c *Config) { c.Width = 160; c.Height = 120 },
		},
		{
			name:    "negative device",
			mutate:  func(c *Config) { c.Device = -1 },
			wantErr: true,
		},
		{
			name:    "width above sensor max",
			mutate:  func(c *Config) { c.Width = SensorMaxWidth + 1 },
			wantErr: true,
		},
		{
			name:    "height below minimum",
			mutate:  func(c *Config) { c.Height = 0 },
			wantErr: true,
		},
		{
			name:    "quality zero",
			mutate:  func(c *Config) { c.Quality = 0 },
			wantErr: true,
		},
		{
			name:    "quality above 100",
			mutate:  func(c *Config) { c.Quality = 101 },
			wantErr: true,
		},
		{
			name:    "no buffers",
			mutate:  func(c *Config) { c.Buffers = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			errs := cfg.Validate()
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}
