package auth

import "context"

// AuthVerifier valida un token y devuelve claims o error.
// La emisión/verificación real de JWT vive en un servicio externo;
// aquí solo existe el puerto.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
