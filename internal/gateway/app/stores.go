package app

import (
	"fmt"
	"log"

	"wfcatalog/internal/export"
	"wfcatalog/internal/gateway/config"
	artifactrepo "wfcatalog/internal/gateway/repository/artifact"
)

// OpenMirrorStore returns the store exported files are copied to, or nil
// when no artifact endpoint is configured.
func OpenMirrorStore(cfg *config.Config) (artifactrepo.Store, error) {
	if !cfg.Artifact.Enabled() {
		return nil, nil
	}
	s3Cfg := artifactrepo.S3Config{
		Endpoint:  cfg.Artifact.Endpoint,
		Region:    cfg.Artifact.Region,
		AccessKey: cfg.Artifact.AccessKey,
		SecretKey: cfg.Artifact.SecretKey,
		Bucket:    cfg.Artifact.Bucket,
		Prefix:    cfg.Artifact.Prefix,
		UseSSL:    cfg.Artifact.UseSSL,
	}
	s3Store, err := artifactrepo.NewS3Store(s3Cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact s3 store: %w", err)
	}
	log.Printf("export mirror: s3 bucket=%s endpoint=%s prefix=%q", s3Cfg.Bucket, s3Cfg.Endpoint, s3Cfg.Prefix)
	return s3Store, nil
}

func initMirror(cfg *config.Config) (export.Mirror, error) {
	store, err := OpenMirrorStore(cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		log.Printf("export mirror: disabled")
		return nil, nil
	}
	return store, nil
}
