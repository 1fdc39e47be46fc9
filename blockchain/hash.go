// Package blockchain computes the SHA-256 hashes used to certify inventory
// reports. "Blockchain" is the product name only: these are plain
// content-addressed digests, there is no chain and no consensus.
package blockchain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Juandaamez/inventario-backend/utils"
)

// ItemInventario is the canonical triple hashed per inventory row. Field
// order matters: it matches the alphabetical key order of the serialized
// form, so the JSON bytes are identical regardless of how the struct is
// built.
type ItemInventario struct {
	Cantidad int    `json:"cantidad"`
	Codigo   string `json:"codigo"`
	Nombre   string `json:"nombre"`
}

// HashDocumento digests the exact byte sequence of a rendered document.
// Hashing nothing is not a meaningful integrity claim, so empty input is
// rejected.
func HashDocumento(contenido []byte) (string, error) {
	if len(contenido) == 0 {
		return "", fmt.Errorf("el contenido no puede estar vacio: %w", utils.ErrorInvalidInput)
	}
	suma := sha256.Sum256(contenido)
	return hex.EncodeToString(suma[:]), nil
}

// HashInventario digests a canonical form of the inventory rows: items
// sorted ascending by codigo, serialized as a compact JSON array with
// alphabetical keys. Permuting the input rows never changes the result.
func HashInventario(items []ItemInventario) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("el inventario no puede estar vacio: %w", utils.ErrorInvalidInput)
	}

	canonico := make([]ItemInventario, len(items))
	copy(canonico, items)
	sort.Slice(canonico, func(i, j int) bool {
		return canonico[i].Codigo < canonico[j].Codigo
	})

	datos, err := json.Marshal(canonico)
	if err != nil {
		return "", err
	}
	return HashDocumento(datos)
}

// Verificar reports whether contenido hashes to the given digest.
func Verificar(hash string, contenido []byte) bool {
	calculado, err := HashDocumento(contenido)
	if err != nil {
		return false
	}
	return strings.EqualFold(hash, calculado)
}

// HashCorto is the 16-character short form used in verification URLs.
func HashCorto(hash string) string {
	if len(hash) < 16 {
		return hash
	}
	return hash[:16]
}
