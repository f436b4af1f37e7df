package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session datos de la sesión activa del CLI: usuario autenticado y su token.
type Session struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
	SavedAt  time.Time `json:"saved_at"`
}

// Store persistencia de la sesión en un archivo JSON. El token sobrevive
// entre ejecuciones del CLI; borrar el archivo equivale a cerrar sesión.
type Store struct {
	path string
}

// NewStore crea un store sobre la ruta dada. Si path es vacío se usa
// ~/.expiry-monitor/session.json.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolver home: %w", err)
		}
		path = filepath.Join(home, ".expiry-monitor", "session.json")
	}
	return &Store{path: path}, nil
}

// Path devuelve la ruta del archivo de sesión.
func (s *Store) Path() string { return s.path }

// Save persiste la sesión. El archivo queda con permisos 0600.
func (s *Store) Save(sess *Session) error {
	if sess == nil || sess.Token == "" {
		return errors.New("sesión vacía")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("crear directorio de sesión: %w", err)
	}
	sess.SavedAt = time.Now()
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Load lee la sesión persistida. Devuelve nil sin error si no hay sesión.
func (s *Store) Load() (*Session, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		// Archivo corrupto: se trata como sin sesión.
		return nil, nil
	}
	if sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}

// Clear elimina la sesión persistida. No es error que no exista.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
