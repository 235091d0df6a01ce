package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/darkkaiser/store-promoter/internal/pkg/atomicfile"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
)

// LoadProducts path의 JSON 배열을 읽어 상품 목록을 반환합니다.
//
// 파일이 없으면 NotFound, 내용이 손상되었거나 필수 항목이 비어 있으면 LocalFault를 반환합니다.
// 빈 배열은 에러가 아니며, 빈 목록에 대한 처리는 호출자가 결정합니다.
func LoadProducts(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrapf(err, apperrors.NotFound, "상품 목록 파일을 찾을 수 없습니다: '%s'", path)
		}
		return nil, apperrors.Wrapf(err, apperrors.System, "상품 목록 파일을 읽을 수 없습니다: '%s'", path)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.LocalFault, "상품 목록 파일이 손상되었습니다: '%s'", path)
	}

	for i, p := range products {
		if err := p.validate(); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.LocalFault, "상품 목록 파일('%s')의 %d번째 항목이 올바르지 않습니다", path, i)
		}
	}

	return products, nil
}

// SaveProducts 상품 목록을 들여쓴 JSON으로 원자적으로 저장합니다.
func SaveProducts(path string, products []Product) error {
	if products == nil {
		products = []Product{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "상품 목록 직렬화에 실패했습니다")
	}

	return atomicfile.WriteFile(path, buf.Bytes(), 0644)
}
