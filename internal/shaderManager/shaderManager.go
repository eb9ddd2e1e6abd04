package shaderManager

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"
	"radiantwavetech.com/noisewave/internal/logger"
)

//go:embed shaders/*.vert shaders/*.frag
var embedded embed.FS

// Shader represents a compiled GLSL program.
type Shader struct {
	Name      string
	ProgramID uint32
}

// ShaderManager handles the loading, compiling, and management of GLSL shader programs.
type ShaderManager struct {
	shaders map[string]*Shader
}

var (
	instance *ShaderManager
	once     sync.Once
)

// InitShaderManager compiles every embedded shader pair. A program that fails
// to compile is logged and left out; callers discover that through Get.
func InitShaderManager() error {
	var err error
	once.Do(func() {
		logger.InfoF("Initializing ShaderManager singleton.")
		sm := &ShaderManager{
			shaders: make(map[string]*Shader),
		}
		if e := sm.LoadShaders(embedded); e != nil {
			err = fmt.Errorf("could not load shaders: %w", e)
			return
		}
		instance = sm
		logger.InfoF("ShaderManager initialized with %d programs.", len(sm.shaders))
	})
	return err
}

// Get returns the singleton ShaderManager instance.
func Get() *ShaderManager {
	if instance == nil {
		panic("ShaderManager has not been initialized. Call InitShaderManager at application startup.")
	}
	return instance
}

// Get retrieves a compiled Shader object by its name.
func (sm *ShaderManager) Get(name string) (*Shader, bool) {
	shader, ok := sm.shaders[name]
	return shader, ok
}

// Close deletes all loaded shader programs from the GPU to free up resources.
func (sm *ShaderManager) Close() {
	for name, shader := range sm.shaders {
		gl.DeleteProgram(shader.ProgramID)
		delete(sm.shaders, name)
	}
	logger.InfoF("ShaderManager closed and all programs deleted.")
}

// sourcePair is the vertex and fragment source of one program.
type sourcePair struct {
	name     string
	vertex   string
	fragment string
}

// findPairs returns every .vert file under shaders/ that has a matching .frag,
// sorted by name, and the names of vertex shaders whose fragment is missing.
func findPairs(fsys fs.FS) ([]sourcePair, []string, error) {
	vertPaths, err := fs.Glob(fsys, "shaders/*.vert")
	if err != nil {
		return nil, nil, fmt.Errorf("listing vertex shaders: %w", err)
	}
	sort.Strings(vertPaths)

	var pairs []sourcePair
	var missing []string
	for _, vertPath := range vertPaths {
		name := strings.TrimSuffix(path.Base(vertPath), ".vert")
		fragPath := strings.TrimSuffix(vertPath, ".vert") + ".frag"

		vert, err := fs.ReadFile(fsys, vertPath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading vertex shader %s: %w", vertPath, err)
		}
		frag, err := fs.ReadFile(fsys, fragPath)
		if err != nil {
			missing = append(missing, name)
			continue
		}
		pairs = append(pairs, sourcePair{name: name, vertex: string(vert), fragment: string(frag)})
	}
	return pairs, missing, nil
}

// LoadShaders compiles each .vert/.frag pair found in fsys.
func (sm *ShaderManager) LoadShaders(fsys fs.FS) error {
	pairs, missing, err := findPairs(fsys)
	if err != nil {
		return err
	}
	for _, name := range missing {
		logger.WarningF("Vertex shader '%s' found but matching fragment shader is missing. Skipping.", name)
	}

	for _, p := range pairs {
		programID, err := createShaderProgram(p.vertex, p.fragment)
		if err != nil {
			logger.ErrorF("Failed to create shader program for '%s': %v", p.name, err)
			continue
		}
		sm.shaders[p.name] = &Shader{Name: p.name, ProgramID: programID}
		logger.InfoF("Successfully compiled and linked shader: %s", p.name)
	}
	return nil
}

// createShaderProgram compiles and links a vertex and fragment shader source.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

// compileShader compiles a single shader source string.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		var shaderTypeName string
		switch shaderType {
		case gl.VERTEX_SHADER:
			shaderTypeName = "Vertex"
		case gl.FRAGMENT_SHADER:
			shaderTypeName = "Fragment"
		default:
			shaderTypeName = "Unknown"
		}
		return 0, fmt.Errorf("failed to compile %s shader: %v", shaderTypeName, log)
	}

	return shader, nil
}
