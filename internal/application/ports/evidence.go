package ports

import "context"

// Upload evidencia cruda recibida del cliente (imagen de compra o de condición final).
type Upload struct {
	Filename string
	Data     []byte
}

// EvidenceStore guarda evidencia y devuelve una referencia (URL o ruta). El motor solo persiste la referencia.
type EvidenceStore interface {
	Store(ctx context.Context, upload Upload) (string, error)
}

// ResolveImage devuelve la referencia a persistir: sube la evidencia si viene, o usa la referencia dada.
func ResolveImage(ctx context.Context, store EvidenceStore, ref string, upload *Upload) (string, error) {
	if upload == nil || len(upload.Data) == 0 || store == nil {
		return ref, nil
	}
	return store.Store(ctx, *upload)
}
