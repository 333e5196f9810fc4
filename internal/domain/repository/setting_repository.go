package repository

import "context"

// SettingRepository almacén clave/valor de políticas. Sin caché: cada petición lee valores frescos.
type SettingRepository interface {
	// GetMany devuelve solo las claves existentes.
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, key, value string) error
}
