// Package minilm runs the all-MiniLM-L6-v2 sentence embedding model locally
// through ONNX Runtime. The native implementation needs cgo and is compiled
// only with -tags minilm; other builds get a stub returning ErrNotEnabled.
package minilm

import "math"

// ModelName identifies the model in logs and embedding cache keys.
const ModelName = "all-MiniLM-L6-v2"

// DefaultMaxLength is the token window the model was trained with.
const DefaultMaxLength = 256

// Config locates the model files.
type Config struct {
	ModelPath     string // model.onnx
	TokenizerPath string // tokenizer.json
	// LibraryPath points at the onnxruntime shared library when it is not
	// on the default loader path.
	LibraryPath string
	MaxLength   int
}

func (c Config) maxLength() int {
	if c.MaxLength <= 0 {
		return DefaultMaxLength
	}
	return c.MaxLength
}

// meanPool averages token states weighted by the attention mask and
// L2-normalizes the result, reproducing the sentence-transformers pooling
// head. hidden is [batch, seq, dim] flattened, mask is [batch, seq].
func meanPool(hidden []float32, mask []int64, batch, seq, dim int) [][]float32 {
	out := make([][]float32, batch)
	for b := 0; b < batch; b++ {
		vec := make([]float32, dim)
		var count float64
		for s := 0; s < seq; s++ {
			if mask[b*seq+s] == 0 {
				continue
			}
			count++
			row := hidden[(b*seq+s)*dim : (b*seq+s+1)*dim]
			for d, x := range row {
				vec[d] += x
			}
		}
		if count > 0 {
			var norm float64
			for d := range vec {
				vec[d] = float32(float64(vec[d]) / count)
				norm += float64(vec[d]) * float64(vec[d])
			}
			if norm > 0 {
				norm = math.Sqrt(norm)
				for d := range vec {
					vec[d] = float32(float64(vec[d]) / norm)
				}
			}
		}
		out[b] = vec
	}
	return out
}

// padBatch turns token ids into fixed-width id, mask and type tensors,
// truncating to maxLen and padding every row to the longest one.
func padBatch(ids [][]uint32, maxLen int) (inputIDs, mask, typeIDs []int64, seq int) {
	for _, row := range ids {
		seq = max(seq, min(len(row), maxLen))
	}
	if seq == 0 {
		seq = 1
	}
	n := len(ids) * seq
	inputIDs = make([]int64, n)
	mask = make([]int64, n)
	typeIDs = make([]int64, n)
	for b, row := range ids {
		for s := 0; s < seq && s < len(row); s++ {
			inputIDs[b*seq+s] = int64(row[s])
			mask[b*seq+s] = 1
		}
	}
	return inputIDs, mask, typeIDs, seq
}
