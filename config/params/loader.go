package params

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// LoadChainConfigFile loads a yaml chain config file and applies it on top of
// the currently active config. Unknown keys are rejected so that typos do not
// silently fall back to defaults.
func LoadChainConfigFile(chainConfigFileName string) {
	yamlFile, err := os.ReadFile(chainConfigFileName) // #nosec G304
	if err != nil {
		log.WithError(err).Fatal("Failed to read chain config file.")
	}
	conf := CoordinatorConfig().Copy()
	if err := yaml.UnmarshalStrict(yamlFile, conf); err != nil {
		log.WithError(err).Fatal("Failed to parse chain config yaml file.")
	}
	log.Debugf("Config file values: %+v", conf)
	OverrideCoordinatorConfig(conf)
}
