package config

import "strings"

// trimOr returns s without surrounding space, or def when that is empty.
func trimOr(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func normalizeDatabaseConfig(cfg DatabaseRuntimeConfig) DatabaseRuntimeConfig {
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.Host = trimOr(cfg.Host, defaultDBHost)
	cfg.User = trimOr(cfg.User, defaultDBUser)
	cfg.Name = trimOr(cfg.Name, defaultDBName)
	cfg.Charset = trimOr(cfg.Charset, defaultDBCharset)
	cfg.Loc = trimOr(cfg.Loc, defaultDBLoc)
	if cfg.Port == 0 {
		cfg.Port = defaultDBPort
	}

	if len(cfg.Params) > 0 {
		params := make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k != "" && v != "" {
				params[k] = v
			}
		}
		cfg.Params = params
	}
	return cfg
}

func normalizeMongoConfig(cfg MongoRuntimeConfig) MongoRuntimeConfig {
	cfg.URI = trimOr(cfg.URI, defaultMongoURI)
	cfg.Database = trimOr(cfg.Database, defaultMongoDatabase)
	cfg.Collection = trimOr(cfg.Collection, defaultMongoCollection)
	return cfg
}

func normalizeRedisConfig(cfg RedisRuntimeConfig) RedisRuntimeConfig {
	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.Host = trimOr(cfg.Host, defaultRedisHost)
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.Password = strings.TrimSpace(cfg.Password)
	if cfg.Port == 0 {
		cfg.Port = defaultRedisPort
	}
	return cfg
}

// normalizeRedisRawURL adds the redis:// scheme to bare host:port values.
func normalizeRedisRawURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" || strings.Contains(u, "://") {
		return u
	}
	return "redis://" + u
}

func normalizeOrigins(origins []string) []string {
	out := origins[:0:0]
	for _, origin := range origins {
		if o := strings.TrimSpace(origin); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	return strings.ToLower(trimOr(env, defaultEnv))
}
