package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort        = ":8081"
	defaultRoutePrefix = "/cvb"
	defaultUser        = "default"
)

type Config struct {
	Port string
	Env  string
	// WorkflowsDir is the catalog root and the default export source.
	WorkflowsDir string
	// ExportDir is the default export destination.
	ExportDir    string
	RoutePrefix  string
	// CacheEntries bounds the parse cache (CVB_CACHE_ENTRIES, 0 disables it).
	// Entries are validated by modification time and size only.
	CacheEntries int
	Artifact     ArtifactConfig
}

// ArtifactConfig describes the optional S3-compatible mirror for exports.
type ArtifactConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// Enabled reports whether exported files should be mirrored.
func (c ArtifactConfig) Enabled() bool {
	return c.Endpoint != ""
}

// Load builds the configuration from args, the environment and an optional
// .env file. Flags win over environment variables, which win over .env.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	port := fs.String("port", defaultPort, "server port")
	workflowsDir := fs.String("workflows-dir", "", "directory holding workflow files")
	exportDir := fs.String("export-dir", "", "destination directory for exported API graphs")
	prefix := fs.String("prefix", "", "route prefix")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" && !set["port"] {
		*port = envPort
	}
	if !strings.Contains(*port, ":") {
		*port = ":" + *port
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	src, dst := resolveUserDirs()
	if set["workflows-dir"] {
		src = *workflowsDir
	}
	if set["export-dir"] {
		dst = *exportDir
	}

	routePrefix := firstNonEmpty(strings.TrimSpace(os.Getenv("CVB_ROUTE_PREFIX")), defaultRoutePrefix)
	if set["prefix"] {
		routePrefix = *prefix
	}

	cacheEntries := 0
	if raw := strings.TrimSpace(os.Getenv("CVB_CACHE_ENTRIES")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid CVB_CACHE_ENTRIES %q", raw)
		}
		cacheEntries = n
	}

	return &Config{
		Port:         *port,
		Env:          env,
		WorkflowsDir: src,
		ExportDir:    dst,
		RoutePrefix:  NormalizePrefix(routePrefix),
		CacheEntries: cacheEntries,
		Artifact:     loadArtifactConfig(),
	}, nil
}

// resolveUserDirs derives the workflow and export directories from the
// COMFY_* variables, falling back to <root>/user/<user>/{workflows,workflows_api}.
func resolveUserDirs() (string, string) {
	root := firstNonEmpty(strings.TrimSpace(os.Getenv("COMFY_ROOT")), ".")
	user := firstNonEmpty(strings.TrimSpace(os.Getenv("COMFY_USER")), defaultUser)
	userDir := firstNonEmpty(
		strings.TrimSpace(os.Getenv("COMFY_USER_DIR")),
		filepath.Join(root, "user", user),
	)
	src := firstNonEmpty(strings.TrimSpace(os.Getenv("COMFY_WORKFLOWS_DIR")), filepath.Join(userDir, "workflows"))
	dst := firstNonEmpty(strings.TrimSpace(os.Getenv("COMFY_WORKFLOWS_API_DIR")), filepath.Join(userDir, "workflows_api"))
	return src, dst
}

// NormalizePrefix returns prefix with a single leading slash and no trailing
// slash. The root prefix is returned as "".
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

func loadArtifactConfig() ArtifactConfig {
	return ArtifactConfig{
		Endpoint:  strings.TrimSpace(os.Getenv("ARTIFACT_S3_ENDPOINT")),
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_BUCKET")), "workflows-api"),
		Prefix:    strings.TrimSpace(os.Getenv("ARTIFACT_S3_PREFIX")),
		UseSSL:    resolveArtifactUseSSL(),
	}
}

func resolveArtifactUseSSL() bool {
	raw := strings.TrimSpace(os.Getenv("ARTIFACT_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
