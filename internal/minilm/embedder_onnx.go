//go:build minilm

package minilm

import (
	"context"
	"fmt"
	"sync"

	"github.com/daulet/tokenizers"
	onnxruntime "github.com/yalue/onnxruntime_go"
)

// Embedder is the ONNX Runtime backed MiniLM model. A session runs one batch
// at a time.
type Embedder struct {
	mu         sync.Mutex
	session    *onnxruntime.DynamicAdvancedSession
	tokenizer  *tokenizers.Tokenizer
	inputNames []string
	outputName string
	dims       int
	maxLen     int
}

// New loads the tokenizer and model described by cfg.
func New(cfg Config) (*Embedder, error) {
	if cfg.LibraryPath != "" {
		onnxruntime.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if !onnxruntime.IsInitialized() {
		if err := onnxruntime.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	tk, err := tokenizers.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	inputs, outputs, err := onnxruntime.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		tk.Close()
		return nil, fmt.Errorf("read model info: %w", err)
	}
	if len(outputs) == 0 {
		tk.Close()
		return nil, fmt.Errorf("model %s has no outputs", cfg.ModelPath)
	}
	inputNames := make([]string, len(inputs))
	for i, in := range inputs {
		inputNames[i] = in.Name
	}
	// last_hidden_state comes first in the exported graph.
	out := outputs[0]
	dims := 0
	if n := len(out.Dimensions); n > 0 {
		dims = int(out.Dimensions[n-1])
	}

	options, err := onnxruntime.NewSessionOptions()
	if err != nil {
		tk.Close()
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	session, err := onnxruntime.NewDynamicAdvancedSession(cfg.ModelPath, inputNames, []string{out.Name}, options)
	if err != nil {
		tk.Close()
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Embedder{
		session:    session,
		tokenizer:  tk,
		inputNames: inputNames,
		outputName: out.Name,
		dims:       dims,
		maxLen:     cfg.maxLength(),
	}, nil
}

// Embed implements semantic.Embedder.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, fmt.Errorf("minilm: embedder closed")
	}

	ids := make([][]uint32, len(texts))
	for i, text := range texts {
		ids[i] = e.tokenizer.EncodeWithOptions(text, true).IDs
	}
	inputIDs, mask, typeIDs, seq := padBatch(ids, e.maxLen)
	shape := onnxruntime.NewShape(int64(len(texts)), int64(seq))

	byName := map[string][]int64{
		"input_ids":      inputIDs,
		"attention_mask": mask,
		"token_type_ids": typeIDs,
	}
	inputs := make([]onnxruntime.Value, len(e.inputNames))
	defer func() {
		for _, v := range inputs {
			if v != nil {
				_ = v.Destroy()
			}
		}
	}()
	for i, name := range e.inputNames {
		data, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("minilm: unexpected model input %q", name)
		}
		tensor, err := onnxruntime.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("minilm: tensor %s: %w", name, err)
		}
		inputs[i] = tensor
	}

	outputs := []onnxruntime.Value{nil}
	if err := e.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("minilm: inference: %w", err)
	}
	defer func() { _ = outputs[0].Destroy() }()

	hidden, ok := outputs[0].(*onnxruntime.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("minilm: output %s is not float32", e.outputName)
	}
	outShape := hidden.GetShape()
	if len(outShape) != 3 {
		return nil, fmt.Errorf("minilm: output shape %v, want [batch seq dim]", outShape)
	}
	return meanPool(hidden.GetData(), mask, len(texts), seq, int(outShape[2])), nil
}

// Dimensions returns the embedding size reported by the model, or 0 when the
// graph leaves it symbolic.
func (e *Embedder) Dimensions() int {
	return e.dims
}

// Close releases the session and tokenizer.
func (e *Embedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var err error
	if e.session != nil {
		err = e.session.Destroy()
		e.session = nil
	}
	if e.tokenizer != nil {
		e.tokenizer.Close()
		e.tokenizer = nil
	}
	return err
}
