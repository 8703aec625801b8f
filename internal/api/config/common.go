package config

// Config 配置主体
type Config struct {
	Server                  ServerConfig            `mapstructure:"server"`
	DB                      DBConfig                `mapstructure:"database"`
	Redis                   RedisConfig             `mapstructure:"redis"`
	Kafka                   KafkaConfig             `mapstructure:"kafka"`
	KafkaEngagementConsumer KafkaEngagementConsumer `mapstructure:"kafka_engagement_consumer"`
	Scoring                 ScoringConfig           `mapstructure:"scoring"`
	Feed                    FeedConfig              `mapstructure:"feed"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaEngagementConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// ScoringConfig 可见性评分配置, 调参不需要改代码
type ScoringConfig struct {
	EngagementWeight  float64 `mapstructure:"engagement_weight"`
	FreshnessWeight   float64 `mapstructure:"freshness_weight"`
	ReliabilityWeight float64 `mapstructure:"reliability_weight"`
	QualityWeight     float64 `mapstructure:"quality_weight"`

	FreshnessHalfLifeHours float64 `mapstructure:"freshness_half_life_hours"`
	EngagementSaturation   float64 `mapstructure:"engagement_saturation"`

	PenaltyStep         float64 `mapstructure:"penalty_step"`
	PenaltyCap          float64 `mapstructure:"penalty_cap"`
	PenaltyQuietHours   int     `mapstructure:"penalty_quiet_hours"`
	PenaltyDecayPerHour float64 `mapstructure:"penalty_decay_per_hour"`

	BoostUnit        float64 `mapstructure:"boost_unit"`
	BoostWindowHours int     `mapstructure:"boost_window_hours"`

	PreferenceUnit float64 `mapstructure:"preference_unit"`

	CommunityWindowHours int `mapstructure:"community_window_hours"`
	CandidateLimit       int `mapstructure:"candidate_limit"`
}

// FeedConfig 信息流分页配置
type FeedConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}
