package database

import (
	"io"
	"os"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"gopkg.in/yaml.v3"
)

// ExportYAML writes db as a YAML document.
func ExportYAML(db *Database, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(db); err != nil {
		return common.FormatError(common.ErrFailedToEncodeDatabase, err)
	}
	return encoder.Close()
}

// ExportYAMLFile writes db to filename.
func ExportYAMLFile(db *Database, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	defer file.Close()

	if err := ExportYAML(db, file); err != nil {
		return err
	}
	common.LogInfo(common.InfoDatabaseExported, filename, "yaml")
	return nil
}

// LoadYAML reads a database written by ExportYAML.
func LoadYAML(reader io.Reader) (*Database, error) {
	var db Database
	if err := yaml.NewDecoder(reader).Decode(&db); err != nil {
		return nil, common.FormatError(common.ErrFailedToParseDatabase, err)
	}
	return &db, nil
}

// LoadYAMLFile reads a database from filename.
func LoadYAMLFile(filename string) (*Database, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadDatabaseFile, err)
	}
	defer file.Close()
	return LoadYAML(file)
}
