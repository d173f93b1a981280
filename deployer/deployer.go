package deployer

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"ogkort/card"
	"ogkort/config"
)

// Deployer pushes the generated image directory to the webhost. Cards
// for fresh entries can go live this way before the next full site
// deploy, so newly shared links do not point at a missing image.
type Deployer struct {
	cfg *config.Config
}

// NewDeployer creates a new deployer
func NewDeployer(cfg *config.Config) *Deployer {
	return &Deployer{cfg: cfg}
}

// Sync rsyncs the image directory to the configured target. Only the
// card images travel; everything else on the site belongs to the
// regular deploy.
func (d *Deployer) Sync() error {
	if d.cfg.Deploy.RsyncTarget == "" {
		return fmt.Errorf("deploy.rsync_target is not configured")
	}

	srcDir := card.OutputDir(d.cfg.Site.Root)
	if _, err := os.Stat(srcDir); err != nil {
		return fmt.Errorf("nothing to sync: %w", err)
	}

	log.Printf("🌐 Syncing card images to webhost...")

	cmd := exec.Command("rsync", d.rsyncArgs(srcDir)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("rsync failed: %w\nOutput: %s", err, string(output))
	}

	log.Printf("✓ Synced %s to %s", srcDir, d.cfg.Deploy.RsyncTarget)
	return nil
}

// rsyncArgs builds the rsync invocation. The trailing slash on the
// source makes rsync copy the directory contents, not the directory.
func (d *Deployer) rsyncArgs(srcDir string) []string {
	args := strings.Fields(d.cfg.Deploy.RsyncOpts)
	return append(args, srcDir+"/", d.cfg.Deploy.RsyncTarget+"/")
}
