package auth

// Claims es la identidad extraída de un token verificado.
// Email es la dirección registrada en el proveedor de identidad; el
// módulo de invitaciones la compara contra el email invitado.
type Claims struct {
	UserID string
	Email  string
}
