// Package config holds the operator's process configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/yaml"
)

// DefaultDomain is used when neither --domain nor a PROJECT file set one.
const DefaultDomain = "siliconhills.dev"

// Config is loaded once at process start.
type Config struct {
	// Domain suffixes the API group: replicator.<Domain>.
	Domain string
	// ProjectFile is a kubebuilder PROJECT file to read Domain from.
	ProjectFile string

	Namespace   string
	Kubeconfig  string
	MetricsAddr string
	Debug       bool
}

// AddFlags registers the configuration flags on fs.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Domain, "domain", "", "API group domain; overrides the PROJECT file")
	fs.StringVar(&c.ProjectFile, "project", "PROJECT", "path to the kubebuilder PROJECT file")
	fs.StringVar(&c.Namespace, "namespace", "", "namespace to watch (empty for all)")
	fs.StringVar(&c.Kubeconfig, "kubeconfig", "", "path to kubeconfig; defaults to in-cluster or $KUBECONFIG")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", ":8080", "address to serve metrics on (empty to disable)")
	fs.BoolVar(&c.Debug, "debug", false, "enable debug logging")
}

// Project is the subset of a kubebuilder PROJECT file the operator reads.
type Project struct {
	Domain      string `json:"domain"`
	ProjectName string `json:"projectName,omitempty"`
	Repo        string `json:"repo,omitempty"`
}

// ReadProject parses the PROJECT file at path.
func ReadProject(path string) (*Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &p, nil
}

// Load resolves the domain: the --domain flag wins, then the PROJECT file,
// then DefaultDomain. A missing PROJECT file is not an error.
func (c *Config) Load() error {
	if c.Domain == "" && c.ProjectFile != "" {
		p, err := ReadProject(c.ProjectFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return err
		default:
			c.Domain = p.Domain
		}
	}
	if c.Domain == "" {
		c.Domain = DefaultDomain
	}
	return c.Validate()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Domain == "" {
		return errors.New("domain must not be empty")
	}
	return nil
}

// RESTConfig builds the client configuration from Kubeconfig, falling back
// to the default loading rules.
func (c *Config) RESTConfig() (*rest.Config, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if c.Kubeconfig != "" {
		rules.ExplicitPath = c.Kubeconfig
	}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
}
