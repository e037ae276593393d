package constants

const (
	AppName            = "hedaya"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/hedaya/hedaya.db"
	Version            = "v0.3.0"

	// Storage keys. Each value is a single JSON blob replaced wholesale on save.
	KeyDailyLogs = "hedaya.daily_logs"
	KeyProfile   = "hedaya.profile"
	KeyProgress  = "hedaya.progress"

	// SettingKeyPrefix namespaces individual settings inside the key-value store.
	SettingKeyPrefix = "setting."

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "hedaya-"
	BackupFileSuffix = ".db"

	// Log file rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Notify constants
	NotifierLockfileName   = "hedaya-notifier.lock"
	NotificationDurationMs = 5000
	NotifierAppIdentifier  = "com.julianstephens.hedaya"
	NotifierExecutable     = "hedaya-companion"
	NotifierSecretHeader   = "X-Hedaya-Secret"

	// MemoryStorePath selects the in-memory store.
	MemoryStorePath = ":memory:"
)
