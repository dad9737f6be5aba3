package util

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ValentinKolb/tKV/lib/typed"
	"github.com/stretchr/testify/require"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		if len(line) > Wrap {
			t.Errorf("line longer than %d characters: %q", Wrap, line)
		}
	}
	require.Equal(t, "short text", WrapString("  short   text "))
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Engine: EngineMaple, DataDir: "data", Codec: "msgpack", Output: OutputText}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"engine", func(c *Config) { c.Engine = "redis" }},
		{"output", func(c *Config) { c.Output = "xml" }},
		{"codec", func(c *Config) { c.Codec = "protobuf" }},
		{"codec binary", func(c *Config) { c.Codec = "binary" }},
		{"data dir", func(c *Config) { c.DataDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestConfigString(t *testing.T) {
	c := Config{Engine: EngineLevelDB, DataDir: "/tmp/tkv", Codec: "gob", RawKeys: true, LogLevel: "warn", Output: OutputJSON}
	s := c.String()
	require.Contains(t, s, "STORAGE")
	require.Contains(t, s, "  Engine                : leveldb\n")
	require.Contains(t, s, "  Keys                  : raw\n")
}

func TestCatalogOptions(t *testing.T) {
	c := Config{Codec: "json", RawKeys: true}
	opts, err := c.CatalogOptions()
	require.NoError(t, err)

	catalog := typed.NewCatalog(opts...)
	require.Equal(t, "json", catalog.Codec().Name())
	require.True(t, catalog.RawKeys())
}

func TestPrint(t *testing.T) {
	v := struct {
		Status string `json:"status" yaml:"status"`
	}{Status: "ok"}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, OutputJSON, v, nil))
	require.JSONEq(t, `{"status":"ok"}`, buf.String())

	buf.Reset()
	require.NoError(t, Print(&buf, OutputYAML, v, nil))
	require.Equal(t, "status: ok\n", buf.String())

	buf.Reset()
	require.NoError(t, Print(&buf, OutputText, v, func() string { return "status is ok" }))
	require.Equal(t, "status is ok\n", buf.String())
}

func TestOpenStorePersists(t *testing.T) {
	for _, engine := range []string{EngineMaple, EngineLevelDB, EngineSQLite} {
		t.Run(engine, func(t *testing.T) {
			conf := &Config{Engine: engine, DataDir: t.TempDir(), Codec: "msgpack", Output: OutputText}

			s, err := OpenStore(context.Background(), conf)
			require.NoError(t, err)
			require.NoError(t, s.Set([]byte("k"), []byte("v")))
			require.NoError(t, s.Close())

			s, err = OpenStore(context.Background(), conf)
			require.NoError(t, err)
			defer s.Close()

			v, ok, err := s.Get([]byte("k"))
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, []byte("v"), v)
			require.Equal(t, uint64(1), s.Calls("get"))
		})
	}
}
