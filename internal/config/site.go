package config

import (
	"time"

	"github.com/nao1215/blotter/internal/crawler"
)

// SiteConfig is the site section of the config file.
type SiteConfig struct {
	// BaseURL is the scheme and host of the police site.
	BaseURL string `yaml:"baseURL,omitempty"`

	// ListingPath is the news-release listing path and article prefix.
	ListingPath string `yaml:"listingPath,omitempty"`

	// PageParam is the listing's page query parameter.
	PageParam string `yaml:"pageParam,omitempty"`

	// ContentSelectors replace the article container selector chain.
	ContentSelectors []string `yaml:"contentSelectors,omitempty"`
}

// RenderConfig is the render section of the config file.
type RenderConfig struct {
	Engine    string        `yaml:"engine,omitempty"`
	Settle    time.Duration `yaml:"settle,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	Rate      float64       `yaml:"rate,omitempty"`
	RemoteURL string        `yaml:"remoteURL,omitempty"`
	Proxy     string        `yaml:"proxy,omitempty"`
	Headful   bool          `yaml:"headful,omitempty"`
	Tor       bool          `yaml:"tor,omitempty"`
	UserAgent string        `yaml:"userAgent,omitempty"`
}

// VocabularyConfig is the vocabulary section of the config file.
type VocabularyConfig struct {
	// Keywords replace the built-in crime vocabulary.
	Keywords []string `yaml:"keywords,omitempty"`

	// ExtraKeywords are appended to the vocabulary.
	ExtraKeywords []string `yaml:"extraKeywords,omitempty"`

	// ChargeWords replace the primary pattern's charge words.
	ChargeWords []string `yaml:"chargeWords,omitempty"`

	// CuePhrases replace the fallback pattern's cue phrases.
	CuePhrases []string `yaml:"cuePhrases,omitempty"`

	// NamePattern and AgePattern replace the fallback expressions.
	NamePattern string `yaml:"namePattern,omitempty"`
	AgePattern  string `yaml:"agePattern,omitempty"`
}

// ServerConfig is the server section of the config file.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// File represents the structure of the .blotter configuration file.
// Zero values leave the corresponding setting untouched.
type File struct {
	Site       SiteConfig       `yaml:"site,omitempty"`
	MaxLinks   int              `yaml:"maxLinks,omitempty"`
	Output     string           `yaml:"output,omitempty"`
	Render     RenderConfig     `yaml:"render,omitempty"`
	Vocabulary VocabularyConfig `yaml:"vocabulary,omitempty"`
	Server     ServerConfig     `yaml:"server,omitempty"`
}

// ToSite overlays the section onto base.
func (s SiteConfig) ToSite(base crawler.Site) crawler.Site {
	if s.BaseURL != "" {
		base.BaseURL = s.BaseURL
	}
	if s.ListingPath != "" {
		base.ListingPath = s.ListingPath
	}
	if s.PageParam != "" {
		base.PageParam = s.PageParam
	}
	if len(s.ContentSelectors) > 0 {
		base.ContentSelectors = append([]string(nil), s.ContentSelectors...)
	}
	return base
}

// Apply overlays the file onto cfg. Only set values are applied, so flags
// parsed afterwards still win.
func (f *File) Apply(cfg *Config) {
	cfg.Site = f.Site.ToSite(cfg.Site)

	if f.MaxLinks != 0 {
		cfg.MaxLinks = f.MaxLinks
	}
	if f.Output != "" {
		cfg.Output = f.Output
	}

	r := f.Render
	if r.Engine != "" {
		cfg.Engine = r.Engine
	}
	if r.Settle != 0 {
		cfg.Settle = r.Settle
	}
	if r.Timeout != 0 {
		cfg.Timeout = r.Timeout
	}
	if r.Rate != 0 {
		cfg.Rate = r.Rate
	}
	if r.RemoteURL != "" {
		cfg.RemoteURL = r.RemoteURL
	}
	if r.Proxy != "" {
		cfg.Proxy = r.Proxy
	}
	if r.UserAgent != "" {
		cfg.UserAgent = r.UserAgent
	}
	cfg.Headful = cfg.Headful || r.Headful
	cfg.Tor = cfg.Tor || r.Tor

	v := f.Vocabulary
	if len(v.Keywords) > 0 {
		cfg.Keywords = append([]string(nil), v.Keywords...)
	}
	cfg.ExtraKeywords = append(cfg.ExtraKeywords, v.ExtraKeywords...)
	if len(v.ChargeWords) > 0 {
		cfg.Patterns.ChargeWords = append([]string(nil), v.ChargeWords...)
	}
	if len(v.CuePhrases) > 0 {
		cfg.Patterns.CuePhrases = append([]string(nil), v.CuePhrases...)
	}
	if v.NamePattern != "" {
		cfg.Patterns.NamePattern = v.NamePattern
	}
	if v.AgePattern != "" {
		cfg.Patterns.AgePattern = v.AgePattern
	}

	if f.Server.Addr != "" {
		cfg.ServerAddr = f.Server.Addr
	}
}
