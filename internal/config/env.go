// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotEnvFile is looked up in the working directory.
const dotEnvFile = ".env"

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// Variables from the dotenv file at dotEnvPath are used only when the
// process environment does not define them. A missing file is not an error.
func parseEnv(cfg any, dotEnvPath string) error {
	environment := env.ToMap(os.Environ())

	if dotEnvPath != "" {
		dotEnv, err := godotenv.Read(dotEnvPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("error reading dotenv file %q: %w", dotEnvPath, err)
		default:
			for key, value := range dotEnv {
				if _, ok := environment[key]; !ok {
					environment[key] = value
				}
			}
		}
	}

	err := env.ParseWithOptions(cfg, env.Options{Environment: environment})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
