package domain

// Context identifica o canal de venda em que uma operação acontece
type Context string

const (
	ContextBoutique Context = "boutique"
	ContextOnline   Context = "online"
	// ContextAll só é aceito em filtros e relatórios
	ContextAll Context = "all"
)

// IsChannel indica se o contexto é um canal concreto (boutique ou online)
func (c Context) IsChannel() bool {
	return c == ContextBoutique || c == ContextOnline
}

// IsValidFilter aceita canais concretos, "all" e vazio
func (c Context) IsValidFilter() bool {
	return c == "" || c == ContextAll || c.IsChannel()
}
