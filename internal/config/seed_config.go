package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SeedConfig struct {
	Admin    SeedAdmin     `yaml:"admin"`
	Products []SeedProduct `yaml:"products"`
}

type SeedAdmin struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type SeedProduct struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Tags        []string `yaml:"tags"`
}

// LoadSeedConfig 讀取初始資料設定檔 (admin帳號與商品目錄)
func LoadSeedConfig(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file failed: %w", err)
	}

	var cf SeedConfig
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse seed file failed: %w", err)
	}
	return &cf, nil
}
