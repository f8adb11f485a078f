package config

import (
	"github.com/finacore/tradeflow/analytics"
)

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_POSTGRES StorageType = "postgres"
const STORAGE_TYPE_INMEM StorageType = "memory"

type Config struct {
	RedisConfig     RedisStorageConfig
	PostgresConfig  PostgresStorageConfig
	InMemoryConfig  InmemStorageConfig
	HttpPort        int
	StorageType     StorageType
	CacheTTLMinutes int
	AuditConfig     analytics.DataCollectorConfig
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
}

type PostgresStorageConfig struct {
	DSN string
}

type InmemStorageConfig struct {
}
