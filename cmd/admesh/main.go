// Command admesh is the CLI front end for the repair pipeline, keeping the
// C ADMesh tool's flag set and fixed operation order (open, rotate x/y/z,
// mirror xy/yz/xz, scale, translate, merge, repair, generate shared
// vertices, write every requested format, report stats), rebuilt with
// spf13/cobra instead of getopt_long.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/admesh/admesh"
	"github.com/admesh/admesh/exportio"
	"github.com/admesh/admesh/stlio"
)

type cliFlags struct {
	exact             bool
	nearby            bool
	tolerance         float32
	iterations        int
	increment         float32
	removeUnconnected bool
	fillHoles         bool
	normalDirections  bool
	normalValues      bool
	noCheck           bool
	reverseAll        bool

	writeBinarySTL string
	writeASCIISTL  string
	writeOFF       string
	writeDXF       string
	writeVRML      string

	translate string
	scale     float32
	xRotate   float32
	yRotate   float32
	zRotate   float32
	xyMirror  bool
	yzMirror  bool
	xzMirror  bool
	merge     string
}

func main() {
	os.Exit(run(os.Stdout))
}

func run(out io.Writer) int {
	var flags cliFlags
	exitCode := 0

	root := &cobra.Command{
		Use:           "admesh [OPTION]... file",
		Short:         "Process and repair triangulated solid meshes",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := executeTo(args[0], flags, out)
			exitCode = code
			if code != 0 {
				return fmt.Errorf("some part of the procedure failed, see the above log for more information about what happened")
			}
			return nil
		},
	}

	root.Flags().BoolVarP(&flags.exact, "exact", "e", false, "Only check for exact matches")
	root.Flags().BoolVarP(&flags.nearby, "nearby", "n", false, "Check for nearby matches as well as exact matches")
	root.Flags().Float32VarP(&flags.tolerance, "tolerance", "t", 0, "Tolerance for nearby check")
	root.Flags().IntVarP(&flags.iterations, "iterations", "i", 2, "Number of iterations for nearby check")
	root.Flags().Float32VarP(&flags.increment, "increment", "m", 0, "Amount to increment tolerance after each iteration")
	root.Flags().BoolVarP(&flags.removeUnconnected, "remove-unconnected", "u", false, "Remove facets that are not connected to any other facet")
	root.Flags().BoolVarP(&flags.fillHoles, "fill-holes", "f", false, "Fill holes")
	root.Flags().BoolVarP(&flags.normalDirections, "normal-directions", "d", false, "Check and fix direction of normals (ie cw, ccw)")
	root.Flags().BoolVarP(&flags.normalValues, "normal-values", "v", false, "Check and fix normal values")
	root.Flags().BoolVarP(&flags.noCheck, "no-check", "c", false, "Skip every repair stage except exact matching")
	root.Flags().BoolVar(&flags.reverseAll, "reverse-all", false, "Reverse the directions of all facets and normals")

	root.Flags().StringVarP(&flags.writeBinarySTL, "write-binary-stl", "b", "", "Output a binary STL file")
	root.Flags().StringVarP(&flags.writeASCIISTL, "write-ascii-stl", "a", "", "Output an ASCII STL file")
	root.Flags().StringVar(&flags.writeOFF, "write-off", "", "Output a Geomview OFF file")
	root.Flags().StringVar(&flags.writeDXF, "write-dxf", "", "Output a DXF file")
	root.Flags().StringVar(&flags.writeVRML, "write-vrml", "", "Output a VRML file")

	root.Flags().StringVar(&flags.translate, "translate", "", "Translate the file to x,y,z")
	root.Flags().Float32Var(&flags.scale, "scale", 0, "Scale the file by factor")
	root.Flags().Float32Var(&flags.xRotate, "x-rotate", 0, "Rotate CCW about x-axis by angle degrees")
	root.Flags().Float32Var(&flags.yRotate, "y-rotate", 0, "Rotate CCW about y-axis by angle degrees")
	root.Flags().Float32Var(&flags.zRotate, "z-rotate", 0, "Rotate CCW about z-axis by angle degrees")
	root.Flags().BoolVar(&flags.xyMirror, "xy-mirror", false, "Mirror about the xy plane")
	root.Flags().BoolVar(&flags.yzMirror, "yz-mirror", false, "Mirror about the yz plane")
	root.Flags().BoolVar(&flags.xzMirror, "xz-mirror", false, "Mirror about the xz plane")
	root.Flags().StringVar(&flags.merge, "merge", "", "Merge file called name with input file")

	if err := root.Execute(); err != nil {
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

// executeTo runs the fixed pipeline against inputFile and reports
// progress/stats to out, returning 1 if any stage failed or 0 on full
// success.
func executeTo(inputFile string, flags cliFlags, out io.Writer) int {
	fmt.Fprintf(out, "Opening %s\n", inputFile)
	f, err := os.Open(inputFile)
	if err != nil {
		fmt.Fprintf(out, "Error opening %s: %v\n", inputFile, err)
		return 1
	}
	parsed, err := stlio.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(out, "Error reading %s: %v\n", inputFile, err)
		return 1
	}

	mesh := admesh.New(parsed.Facets)
	ret := 0

	if flags.xRotate != 0 {
		fmt.Fprintf(out, "Rotating about the x axis by %f degrees...\n", flags.xRotate)
		mesh.RotateX(flags.xRotate)
	}
	if flags.yRotate != 0 {
		fmt.Fprintf(out, "Rotating about the y axis by %f degrees...\n", flags.yRotate)
		mesh.RotateY(flags.yRotate)
	}
	if flags.zRotate != 0 {
		fmt.Fprintf(out, "Rotating about the z axis by %f degrees...\n", flags.zRotate)
		mesh.RotateZ(flags.zRotate)
	}
	if flags.xyMirror {
		fmt.Fprintln(out, "Mirroring about the xy plane...")
		mesh.MirrorXY()
	}
	if flags.yzMirror {
		fmt.Fprintln(out, "Mirroring about the yz plane...")
		mesh.MirrorYZ()
	}
	if flags.xzMirror {
		fmt.Fprintln(out, "Mirroring about the xz plane...")
		mesh.MirrorXZ()
	}
	if flags.scale != 0 {
		fmt.Fprintf(out, "Scaling by factor %f...\n", flags.scale)
		mesh.Scale(flags.scale)
	}
	if flags.translate != "" {
		var x, y, z float32
		if _, err := fmt.Sscanf(flags.translate, "%f,%f,%f", &x, &y, &z); err != nil {
			fmt.Fprintf(out, "Error parsing --translate=%q: %v\n", flags.translate, err)
			return 1
		}
		fmt.Fprintf(out, "Translating to %f, %f, %f ...\n", x, y, z)
		mesh.TranslateAbs(x, y, z)
	}
	if flags.merge != "" {
		fmt.Fprintf(out, "Merging %s with %s\n", inputFile, flags.merge)
		mf, err := os.Open(flags.merge)
		if err != nil {
			fmt.Fprintf(out, "Error opening %s: %v\n", flags.merge, err)
			return 1
		}
		mergeParsed, err := stlio.Decode(mf)
		mf.Close()
		if err != nil {
			fmt.Fprintf(out, "Error reading %s: %v\n", flags.merge, err)
			return 1
		}
		mesh.Merge(admesh.New(mergeParsed.Facets))
	}

	fixAll := !flags.noCheck && !flags.exact && !flags.nearby && !flags.removeUnconnected &&
		!flags.fillHoles && !flags.normalDirections && !flags.normalValues && !flags.reverseAll

	opts := admesh.RepairOptions{
		FixAll:            fixAll,
		Exact:             flags.exact,
		Nearby:            flags.nearby,
		Tolerance:         flags.tolerance,
		Increment:         flags.increment,
		Iterations:        flags.iterations,
		RemoveUnconnected: flags.removeUnconnected,
		FillHoles:         flags.fillHoles,
		NormalDirections:  flags.normalDirections,
		NormalValues:      flags.normalValues,
		ReverseAll:        flags.reverseAll,
	}
	mesh.Repair(opts)
	if err := mesh.Err(); err != nil {
		fmt.Fprintf(out, "Repair failed: %v\n", err)
		ret = 1
	}

	needsShared := flags.writeOFF != "" || flags.writeVRML != ""
	if needsShared {
		fmt.Fprintln(out, "Generating shared vertices...")
		mesh.SharedVertices()
	}

	if flags.writeOFF != "" {
		fmt.Fprintf(out, "Writing OFF file %s\n", flags.writeOFF)
		if err := writeFile(flags.writeOFF, func(w io.Writer) error {
			return exportio.WriteOFF(w, mesh.SharedVertices())
		}); err != nil {
			fmt.Fprintln(out, err)
			ret = 1
		}
	}

	if flags.writeDXF != "" {
		fmt.Fprintf(out, "Writing DXF file %s\n", flags.writeDXF)
		label := "Created by admesh version 1.0.0"
		if err := writeFile(flags.writeDXF, func(w io.Writer) error {
			return exportio.WriteDXF(w, mesh.Store, label)
		}); err != nil {
			fmt.Fprintln(out, err)
			ret = 1
		}
	}

	if flags.writeVRML != "" {
		fmt.Fprintf(out, "Writing VRML file %s\n", flags.writeVRML)
		if err := writeFile(flags.writeVRML, func(w io.Writer) error {
			return exportio.WriteVRML(w, mesh.SharedVertices())
		}); err != nil {
			fmt.Fprintln(out, err)
			ret = 1
		}
	}

	if flags.writeASCIISTL != "" {
		fmt.Fprintf(out, "Writing ascii file %s\n", flags.writeASCIISTL)
		label := "Processed by admesh version 1.0.0"
		if err := writeFile(flags.writeASCIISTL, func(w io.Writer) error {
			return stlio.EncodeASCII(w, mesh.Store.All(), label)
		}); err != nil {
			fmt.Fprintln(out, err)
			ret = 1
		}
	}

	if flags.writeBinarySTL != "" {
		fmt.Fprintf(out, "Writing binary file %s\n", flags.writeBinarySTL)
		label := "Processed by admesh version 1.0.0"
		if err := writeFile(flags.writeBinarySTL, func(w io.Writer) error {
			return stlio.EncodeBinary(w, mesh.Store.All(), label)
		}); err != nil {
			fmt.Fprintln(out, err)
			ret = 1
		}
	}

	printStats(out, inputFile, mesh)

	return ret
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening %s for write: %w", path, err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func printStats(out io.Writer, inputFile string, mesh *admesh.Mesh) {
	s := mesh.Stats
	fmt.Fprintf(out, "\nStatistics for %s\n", inputFile)
	fmt.Fprintf(out, "  Number of facets:             %d\n", s.NumberOfFacets)
	fmt.Fprintf(out, "  Number of parts:              %d\n", s.NumberOfParts)
	fmt.Fprintf(out, "  Volume:                       %f\n", s.Volume)
	fmt.Fprintf(out, "  Surface area:                 %f\n", s.SurfaceArea)
	fmt.Fprintf(out, "  Facets with exactly 3 edges:  %d\n", s.ConnectedFacets3Edge)
	fmt.Fprintf(out, "  Facets reversed:              %d\n", s.FacetsReversed)
	fmt.Fprintf(out, "  Facets removed:               %d\n", s.FacetsRemoved)
	fmt.Fprintf(out, "  Facets added:                 %d\n", s.FacetsAdded)
	fmt.Fprintf(out, "  Degenerate facets:            %d\n", s.DegenerateFacets)
	fmt.Fprintf(out, "  Edges fixed:                  %d\n", s.EdgesFixed)
	fmt.Fprintf(out, "  Backwards edges:              %d\n", s.BackwardsEdges)
}
