package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadUploadConfig
const (
	EnvBucket    = "RT_S3_BUCKET"
	EnvRegion    = "RT_S3_REGION"
	EnvEndpoint  = "RT_S3_ENDPOINT"
	EnvAccessKey = "RT_S3_ACCESS_KEY"
	EnvSecretKey = "RT_S3_SECRET_KEY"
	EnvPrefix    = "RT_S3_PREFIX"
	EnvACL       = "RT_S3_ACL"
	EnvTimeout   = "RT_S3_TIMEOUT"
)

// LoadUploadConfig builds an UploadConfig from the process environment.
// Values in envFile fill in variables the environment does not set;
// a missing envFile is not an error.
func LoadUploadConfig(envFile string) (UploadConfig, error) {
	fileEnv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileEnv = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return UploadConfig{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fileEnv[key]
	}

	config := UploadConfig{
		Bucket:    lookup(EnvBucket),
		Region:    lookup(EnvRegion),
		Endpoint:  lookup(EnvEndpoint),
		AccessKey: lookup(EnvAccessKey),
		SecretKey: lookup(EnvSecretKey),
		Prefix:    lookup(EnvPrefix),
		ACL:       lookup(EnvACL),
		Timeout:   DefaultUploadTimeout,
	}

	if raw := lookup(EnvTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return UploadConfig{}, fmt.Errorf("invalid %s %q", EnvTimeout, raw)
		}
		config.Timeout = timeout
	}

	if config.Bucket == "" {
		return UploadConfig{}, fmt.Errorf("%w: set %s", ErrMissingBucket, EnvBucket)
	}
	return config, nil
}
