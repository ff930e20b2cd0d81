package repositories

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"doctools/internal/domain/entities"
)

// FileSystemRepository реализация репозитория для работы с файловой системой
type FileSystemRepository struct{}

// NewFileSystemRepository создает новый репозиторий файловой системы
func NewFileSystemRepository() *FileSystemRepository {
	return &FileSystemRepository{}
}

// StatUpload возвращает сведения о файле без чтения содержимого
func (r *FileSystemRepository) StatUpload(path string) (*entities.Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s является директорией", path)
	}

	return &entities.Upload{
		Name:     filepath.Base(path),
		MIMEType: entities.MIMETypeByName(path),
		Size:     info.Size(),
	}, nil
}

// ReadUpload читает файл с диска как загрузку пользователя
func (r *FileSystemRepository) ReadUpload(path string) (*entities.Upload, error) {
	upload, err := r.StatUpload(path)
	if err != nil {
		return nil, err
	}

	upload.Data, err = os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return upload, nil
}

// SaveArtifact сохраняет результат в директорию и возвращает итоговый путь.
// Запись идет во временный файл с последующим переименованием,
// существующий файл с тем же именем не перезаписывается.
func (r *FileSystemRepository) SaveArtifact(directory string, artifact *entities.OutputArtifact) (string, error) {
	if err := r.CreateDirectory(directory); err != nil {
		return "", fmt.Errorf("не удалось создать директорию %s: %w", directory, err)
	}

	target := r.uniquePath(filepath.Join(directory, filepath.Base(artifact.Name)))

	tmp, err := os.CreateTemp(directory, ".doctools-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(artifact.Data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", err
	}

	return target, nil
}

// uniquePath добавляет суффикс _N, если файл уже существует
func (r *FileSystemRepository) uniquePath(path string) string {
	if !r.FileExists(path) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if !r.FileExists(candidate) {
			return candidate
		}
	}
}

// FileExists проверяет существование файла
func (r *FileSystemRepository) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// CreateDirectory создает директорию
func (r *FileSystemRepository) CreateDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// ListFiles возвращает файлы с указанными MIME типами в директории и всех подпапках
func (r *FileSystemRepository) ListFiles(directory string, mimeTypes []string) ([]string, error) {
	info, err := os.Stat(directory)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", entities.ErrDirectoryNotFound, directory)
	}

	accepted := make(map[string]struct{}, len(mimeTypes))
	for _, t := range mimeTypes {
		accepted[t] = struct{}{}
	}

	var files []string
	err = filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if _, ok := accepted[entities.MIMETypeByName(d.Name())]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
