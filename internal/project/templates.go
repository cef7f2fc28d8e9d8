package project

import "text/template"

// Block templates for the Sonnet project file syntax. Each renders one
// top-level block from the corresponding Config section. The accumulated
// string fields (sweeps, metals, response data) are inserted verbatim; they
// were formatted when added.
var (
	geometryPreamble = tmpl("geometry_preamble",
		"FTYP SONPROJ 18 ! Sonnet project file\nVER {{.Sonnet.Version}}\n")

	netlistPreamble = tmpl("netlist_preamble",
		"FTYP SONNETPRJ 18 ! Sonnet netlist project file\nVER {{.Sonnet.Version}}\n")

	headerBlock = tmpl("header",
		"HEADER\nLIC {{.Sonnet.LicenseID}}\nDAT {{.Sonnet.Date}}\nBUILT_BY_CREATED gosonnet\nEND HEADER\n")

	dimensionsBlock = tmpl("dimensions",
		"DIM\nFREQ {{.Dimensions.FrequencyUnit}}\nANG {{.Dimensions.AngleUnit}}\nRSVY {{.Dimensions.ResistanceUnit}}\nCAP {{.Dimensions.CapacitanceUnit}}\nLNG {{.Dimensions.LengthUnit}}\nIND {{.Dimensions.InductanceUnit}}\nEND DIM\n")

	geometryBlock = tmpl("geometry",
		"GEO\n{{.Geometry.Metals}}\nBOX {{.Geometry.NLevels}} {{.Geometry.BoxWidthX}} {{.Geometry.BoxWidthY}} {{.Geometry.XCells2}} {{.Geometry.YCells2}} 20 0\n{{.Geometry.Dielectrics}}\n{{with .Geometry.ReferencePlanes}}{{.}}\n{{end}}{{with .Geometry.Ports}}{{.}}\n{{end}}{{with .Geometry.Polygons}}{{.}}\n{{end}}END GEO\n")

	frequencyBlock = tmpl("frequency",
		"FREQ\n{{.Frequency.Sweeps}}\nEND FREQ\n")

	controlBlock = tmpl("control",
		"CONTROL\n{{.Control.SweepType}}\nOPTIONS -d\nSPEED {{.Control.Speed}}\nCACHE_ABS {{.Control.CacheABS}}\nQ_ACC Y\nSUBSPLAM Y {{.Control.SubsectionsPerLambda}}\nEND CONTROL\n")

	optimizationBlock = tmpl("optimization",
		"OPT\nMAX {{.Optimization.MaxIterations}}\n{{with .Optimization.OptimizationParameters}}{{.}}\n{{end}}{{with .Optimization.OptimizationGoals}}{{.}}\n{{end}}END OPT\n")

	parameterSweepBlock = tmpl("parameter_sweep",
		"VARSWP\n{{.ParameterSweep.ParameterSweep}}\nEND VARSWP\n")

	outputFileBlock = tmpl("output_file",
		"FILEOUT\n{{with .OutputFile.OutputFolder}}FOLDER {{.}}\n{{end}}{{.OutputFile.ResponseData}}\nEND FILEOUT\n")

	parameterNetlistBlock = tmpl("parameter_netlist",
		"VAR\n{{.ParameterNetlist.Parameters}}\nEND VAR\n")

	circuitBlock = tmpl("circuit",
		"CKT\n{{.Circuit.Elements}}\nEND CKT\n")

	subdividerBlock = tmpl("subdivider",
		"SUBDIV\n{{.Subdivider.Settings}}\nEND SUBDIV\n")

	quickStartGuideBlock = tmpl("quick_start_guide",
		"QSG\nIMPORT {{.QuickStartGuide.Status}}\nEXTRA_METAL NO\nUNITS {{.QuickStartGuide.Status}}\nALIGN {{.QuickStartGuide.Status}}\nREF {{.QuickStartGuide.Status}}\nVIEW_RES {{.QuickStartGuide.Status}}\nMETALS {{.QuickStartGuide.Status}}\nUSED {{.QuickStartGuide.Status}}\nEND QSG\n")

	componentDataFilesBlock = tmpl("component_data_files",
		"SMDFILES\n{{.ComponentDataFiles.Files}}\nEND SMDFILES\n")

	translatorsBlock = tmpl("translators",
		"TRANSLATOR\n{{.Translators.Settings}}\nEND TRANSLATOR\n")
)

func tmpl(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

// Sweep line formats, filled by AddFrequencySweep.
const (
	sweepFormat  = "SWEEP %g %g %g"
	lsweepFormat = "LSWEEP %g %g %d"
	esweepFormat = "ESWEEP %g %g %d"
	stepFormat   = "STEP %g"
	listFormat   = "LIST %s"
	dcFormat     = "DC_FREQ %s %g"
	absFormat    = "ABS_ENTRY %g %g"
	absMinFormat = "ABS_FMIN NET= %s %g %g"
	absMaxFormat = "ABS_FMAX NET= %s %g %g"
)

// Geometry fragment formats.
const (
	referencePlaneFormat = "DRP1 %s %s %g"
	generalMetalFormat   = `%s "%s" %d GEN %g %g %g %g`
	freeSpaceMetalFormat = `%s "Free Space" 0 FREESPACE`
	responseDataFormat   = "FILE %s %s %s %s %s %d %s %s %s"
)
