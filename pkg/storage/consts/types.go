package consts

const (
	DefaultInfoFile = "profiles.json"

	DefaultFilePerm = 0666
	DefaultDirPerm  = 0777
)
